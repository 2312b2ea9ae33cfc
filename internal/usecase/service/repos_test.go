package service

import (
	"context"
	"time"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type memoryUsers struct {
	users     map[int]*entity.User
	lastLogin map[int]time.Time
}

var _ repo.User = (*memoryUsers)(nil)

func newMemoryUsers(users ...*entity.User) *memoryUsers {
	m := &memoryUsers{users: map[int]*entity.User{}, lastLogin: map[int]time.Time{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryUsers) CountUsers(context.Context, entity.UserFilter) (int, error) {
	return len(m.users), nil
}

func (m *memoryUsers) AggregatePostCountByAuthor(context.Context) ([]*entity.AuthorPostCount, error) {
	return nil, nil
}

func (m *memoryUsers) AddUser(_ context.Context, user *entity.User) (int, error) {
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, repo.ErrUsernameExists
		}
	}
	user.ID = len(m.users) + 1
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *memoryUsers) GetUser(_ context.Context, userID int) (*entity.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (m *memoryUsers) GetUsers(context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *memoryUsers) UpdateProfile(_ context.Context, userID int, profile *entity.UpdateProfileRequest) error {
	u, ok := m.users[userID]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.FirstName, u.LastName, u.Email = profile.FirstName, profile.LastName, profile.Email
	return nil
}

func (m *memoryUsers) UpdateLastLogin(_ context.Context, userID int, at time.Time) error {
	if _, ok := m.users[userID]; !ok {
		return repo.ErrUserNotFound
	}
	m.lastLogin[userID] = at
	return nil
}

// memoryPosts хранит посты по slug и запоминает последний фильтр выборки
type memoryPosts struct {
	memoryStore
	lastFilter entity.PostFilter
	lastOrder  entity.OrderBy
	lastLimit  int
	lastOffset int
	edited     []*entity.Post
	deleted    []int
}

var _ repo.Post = (*memoryPosts)(nil)

func (m *memoryPosts) ListPosts(ctx context.Context, filter entity.PostFilter, orderBy entity.OrderBy, limit, offset int) ([]*entity.Post, error) {
	m.lastFilter, m.lastOrder, m.lastLimit, m.lastOffset = filter, orderBy, limit, offset
	return m.memoryStore.ListPosts(ctx, filter, orderBy, limit, offset)
}

func (m *memoryPosts) GetPost(_ context.Context, postID int) (*entity.Post, error) {
	for _, p := range m.posts {
		if p.ID == postID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repo.ErrPostNotFound
}

func (m *memoryPosts) GetPostBySlug(_ context.Context, slug string) (*entity.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repo.ErrPostNotFound
}

func (m *memoryPosts) AddPost(_ context.Context, post *entity.Post) (int, error) {
	for _, p := range m.posts {
		if p.Slug == post.Slug {
			return 0, repo.ErrSlugExists
		}
	}
	stored := *post
	stored.ID = len(m.posts) + 1
	m.posts = append(m.posts, &stored)
	return stored.ID, nil
}

func (m *memoryPosts) EditPost(_ context.Context, post *entity.Post) error {
	for i, p := range m.posts {
		if p.ID == post.ID {
			stored := *post
			if stored.Tags == nil {
				stored.Tags = p.Tags
			}
			m.posts[i] = &stored
			m.edited = append(m.edited, post)
			return nil
		}
	}
	return repo.ErrPostNotFound
}

func (m *memoryPosts) DeletePost(_ context.Context, postID int) error {
	m.deleted = append(m.deleted, postID)
	return nil
}

func (m *memoryPosts) SetPostsStatus(_ context.Context, slugs []string, status entity.PostStatus) (int, error) {
	updated := 0
	for _, p := range m.posts {
		for _, slug := range slugs {
			if p.Slug == slug {
				p.Status = status
				updated++
			}
		}
	}
	return updated, nil
}

type memoryComments struct {
	memoryStore
}

var _ repo.Comment = (*memoryComments)(nil)

func (m *memoryComments) GetComment(_ context.Context, commentID int) (*entity.Comment, error) {
	for _, c := range m.comments {
		if c.ID == commentID {
			return c, nil
		}
	}
	return nil, repo.ErrCommentNotFound
}

func (m *memoryComments) AddComment(_ context.Context, comment *entity.Comment) (int, error) {
	comment.ID = len(m.comments) + 1
	m.comments = append(m.comments, comment)
	return comment.ID, nil
}

func (m *memoryComments) SetCommentApproved(_ context.Context, commentID int, approved bool) error {
	for _, c := range m.comments {
		if c.ID == commentID {
			c.IsApproved = approved
			return nil
		}
	}
	return repo.ErrCommentNotFound
}

func (m *memoryComments) DeleteComment(_ context.Context, commentID int) error {
	for i, c := range m.comments {
		if c.ID == commentID {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return repo.ErrCommentNotFound
}

type memoryCategories struct {
	memoryStore
}

var _ repo.Category = (*memoryCategories)(nil)

func (m *memoryCategories) GetCategories(context.Context) ([]*entity.Category, error) {
	return m.categories, nil
}

func (m *memoryCategories) GetCategory(_ context.Context, categoryID int) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.ID == categoryID {
			return c, nil
		}
	}
	return nil, repo.ErrCategoryNotFound
}

func (m *memoryCategories) GetCategoryBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, repo.ErrCategoryNotFound
}

func (m *memoryCategories) AddCategory(_ context.Context, category *entity.Category) (int, error) {
	category.ID = len(m.categories) + 1
	m.categories = append(m.categories, category)
	return category.ID, nil
}

func (m *memoryCategories) EditCategory(context.Context, *entity.Category) error { return nil }

func (m *memoryCategories) DeleteCategory(context.Context, int) error { return nil }
