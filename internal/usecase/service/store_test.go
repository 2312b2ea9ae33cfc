package service

import (
	"context"
	"sort"
	"time"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

// memoryStore - ContentStore в памяти для тестов аналитики
type memoryStore struct {
	posts      []*entity.Post
	comments   []*entity.Comment
	categories []*entity.Category
	pages      int
	users      []*entity.User

	err   error
	calls int
}

var _ repo.ContentStore = (*memoryStore)(nil)

func (s *memoryStore) fail() error {
	s.calls++
	return s.err
}

func inRange(t time.Time, from, before, until *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if before != nil && !t.Before(*before) {
		return false
	}
	if until != nil && t.After(*until) {
		return false
	}
	return true
}

func (s *memoryStore) matchPost(p *entity.Post, f entity.PostFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if f.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
		return false
	}
	if f.PublishedBefore != nil && p.PublishDate.After(*f.PublishedBefore) {
		return false
	}
	if f.ExcludeID != 0 && p.ID == f.ExcludeID {
		return false
	}
	return inRange(p.CreatedAt, f.CreatedFrom, f.CreatedBefore, f.CreatedUntil)
}

func (s *memoryStore) matchComment(c *entity.Comment, f entity.CommentFilter) bool {
	if f.PostID != 0 && c.PostID != f.PostID {
		return false
	}
	if f.IsApproved != nil && c.IsApproved != *f.IsApproved {
		return false
	}
	return inRange(c.CreatedAt, f.CreatedFrom, nil, nil)
}

func (s *memoryStore) CountPosts(_ context.Context, filter entity.PostFilter) (int, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	count := 0
	for _, p := range s.posts {
		if s.matchPost(p, filter) {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) ListPosts(_ context.Context, filter entity.PostFilter, _ entity.OrderBy, limit, offset int) ([]*entity.Post, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	posts := make([]*entity.Post, 0)
	for _, p := range s.posts {
		if s.matchPost(p, filter) {
			posts = append(posts, p)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return paginate(posts, limit, offset), nil
}

func (s *memoryStore) AggregatePostCountByStatus(_ context.Context) ([]*entity.StatusCount, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	counts := map[entity.PostStatus]int{}
	for _, p := range s.posts {
		counts[p.Status]++
	}
	stats := make([]*entity.StatusCount, 0, len(counts))
	for status, count := range counts {
		stats = append(stats, &entity.StatusCount{Status: status, Count: count})
	}
	return stats, nil
}

func (s *memoryStore) CountComments(_ context.Context, filter entity.CommentFilter) (int, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	count := 0
	for _, c := range s.comments {
		if s.matchComment(c, filter) {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) ListComments(_ context.Context, filter entity.CommentFilter, _ entity.OrderBy, limit, offset int) ([]*entity.Comment, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	comments := make([]*entity.Comment, 0)
	for _, c := range s.comments {
		if s.matchComment(c, filter) {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return paginate(comments, limit, offset), nil
}

func (s *memoryStore) CountCategories(_ context.Context) (int, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	return len(s.categories), nil
}

// AggregatePostCountByCategory отдаёт категории в порядке добавления, сортирует агрегатор
func (s *memoryStore) AggregatePostCountByCategory(_ context.Context) ([]*entity.CategoryPostCount, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	counts := make([]*entity.CategoryPostCount, 0, len(s.categories))
	for _, c := range s.categories {
		row := &entity.CategoryPostCount{CategoryID: c.ID, Name: c.Name, Slug: c.Slug}
		for _, p := range s.posts {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				row.PostCount++
			}
		}
		counts = append(counts, row)
	}
	return counts, nil
}

func (s *memoryStore) CountPages(_ context.Context) (int, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	return s.pages, nil
}

func (s *memoryStore) CountUsers(_ context.Context, filter entity.UserFilter) (int, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	count := 0
	for _, u := range s.users {
		if filter.LastLoginFrom != nil && (u.LastLogin == nil || u.LastLogin.Before(*filter.LastLoginFrom)) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *memoryStore) AggregatePostCountByAuthor(_ context.Context) ([]*entity.AuthorPostCount, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	counts := make([]*entity.AuthorPostCount, 0, len(s.users))
	for _, u := range s.users {
		row := &entity.AuthorPostCount{UserID: u.ID, Username: u.Username}
		for _, p := range s.posts {
			if p.AuthorID == u.ID {
				row.PostCount++
			}
		}
		counts = append(counts, row)
	}
	return counts, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *memoryStore) addPost(status entity.PostStatus, createdAt time.Time, authorID int, categoryID *int) *entity.Post {
	post := &entity.Post{
		ID:          len(s.posts) + 1,
		Title:       "post",
		Status:      status,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		CreatedAt:   createdAt,
		PublishDate: createdAt,
	}
	s.posts = append(s.posts, post)
	return post
}

func (s *memoryStore) addComment(postID int, approved bool, createdAt time.Time) *entity.Comment {
	comment := &entity.Comment{
		ID:         len(s.comments) + 1,
		PostID:     postID,
		IsApproved: approved,
		CreatedAt:  createdAt,
	}
	s.comments = append(s.comments, comment)
	return comment
}
