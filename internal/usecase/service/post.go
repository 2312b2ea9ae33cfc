package service

import (
	"context"
	"strings"
	"time"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
	"cms-backend/pkg/textutil"
)

const (
	// SitePageSize - размер страницы списка постов на публичном сайте
	SitePageSize       = 6
	MaxPageSize        = 100
	featuredPostsLimit = 10
	relatedPostsLimit  = 3
)

var postOrderingFields = map[string]struct{}{
	"created_at":   {},
	"updated_at":   {},
	"publish_date": {},
	"title":        {},
}

type Post struct {
	postRepo     repo.Post
	commentRepo  repo.Comment
	categoryRepo repo.Category
	userRepo     repo.User
	events       *EventPublisher
	now          func() time.Time
}

func NewPost(
	postRepo repo.Post,
	commentRepo repo.Comment,
	categoryRepo repo.Category,
	userRepo repo.User,
	events *EventPublisher,
) usecase.Post {
	return &Post{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		events:       events,
		now:          time.Now,
	}
}

// parseOrdering разбирает параметр вида "-publish_date". Неизвестные поля заменяются на fallback.
func parseOrdering(ordering string, fallback entity.OrderBy) entity.OrderBy {
	ordering = strings.TrimSpace(ordering)
	orderBy := entity.OrderBy{Field: strings.TrimPrefix(ordering, "-"), Desc: strings.HasPrefix(ordering, "-")}
	if _, ok := postOrderingFields[orderBy.Field]; !ok {
		return fallback
	}
	return orderBy
}

// pagination возвращает номер страницы, её размер и смещение
func pagination(page, limit, defaultSize int) (int, int, int) {
	size := defaultSize
	if limit > 0 {
		size = min(limit, MaxPageSize)
	}
	page = max(page, 1)
	return page, size, (page - 1) * size
}

// normalizeTags убирает пустые теги и повторы, сохраняя порядок
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

func (p *Post) publishedFilter() entity.PostFilter {
	now := p.now()
	return entity.PostFilter{Status: entity.PostPublished, PublishedBefore: &now}
}

func (p *Post) GetPosts(ctx context.Context, req *entity.GetPostsRequest) (*entity.PostList, error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, usecase.ErrInvalidRequest
	}
	filter := entity.PostFilter{
		Status:       req.Status,
		AuthorID:     req.Author,
		CategorySlug: req.Category,
		Tag:          req.Tag,
		Search:       req.Search,
	}
	if req.UserID == 0 {
		published := p.publishedFilter()
		filter.Status = published.Status
		filter.PublishedBefore = published.PublishedBefore
	}

	page, size, offset := pagination(req.Page, req.Limit, SitePageSize)
	total, err := p.postRepo.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	posts, err := p.postRepo.ListPosts(ctx, filter, parseOrdering(req.Ordering, entity.OrderByPublishDateDesc), size, offset)
	if err != nil {
		return nil, err
	}
	return &entity.PostList{
		Posts:    posts,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

func (p *Post) GetFeaturedPosts(ctx context.Context) ([]*entity.Post, error) {
	filter := p.publishedFilter()
	filter.WithFeatured = true
	return p.postRepo.ListPosts(ctx, filter, entity.OrderByPublishDateDesc, featuredPostsLimit, 0)
}

func (p *Post) GetPost(ctx context.Context, req *entity.GetPostRequest) (*entity.PostDetail, error) {
	post, err := p.postRepo.GetPostBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	// черновики и отложенные посты анонимам не показываем
	if req.UserID == 0 && !post.IsPublishedAt(p.now()) {
		return nil, repo.ErrPostNotFound
	}
	return p.detail(ctx, post)
}

func (p *Post) detail(ctx context.Context, post *entity.Post) (*entity.PostDetail, error) {
	detail := &entity.PostDetail{Post: post, RelatedPosts: []*entity.Post{}}

	author, err := p.userRepo.GetUser(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	detail.Author = author.Profile()

	approved := true
	detail.Comments, err = p.commentRepo.ListComments(ctx, entity.CommentFilter{PostID: post.ID, IsApproved: &approved}, entity.OrderByCreatedDesc, 0, 0)
	if err != nil {
		return nil, err
	}

	if post.CategoryID != nil {
		detail.Category, err = p.categoryRepo.GetCategory(ctx, *post.CategoryID)
		if err != nil {
			return nil, err
		}
		filter := p.publishedFilter()
		filter.CategoryID = *post.CategoryID
		filter.ExcludeID = post.ID
		detail.RelatedPosts, err = p.postRepo.ListPosts(ctx, filter, entity.OrderByPublishDateDesc, relatedPostsLimit, 0)
		if err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (p *Post) checkCategory(ctx context.Context, categoryID *int) error {
	if categoryID == nil {
		return nil
	}
	_, err := p.categoryRepo.GetCategory(ctx, *categoryID)
	return err
}

func (p *Post) AddPost(ctx context.Context, req *entity.AddPostRequest) (*entity.Post, error) {
	if err := requireUser(req.UserID); err != nil {
		return nil, err
	}
	if err := p.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = textutil.Slugify(req.Title)
	}
	if slug == "" {
		return nil, usecase.ErrInvalidRequest
	}
	status := req.Status
	if status == "" {
		status = entity.PostDraft
	}
	now := p.now()
	publishDate := now
	if req.PublishDate != nil {
		publishDate = *req.PublishDate
	}
	content := textutil.Sanitize(req.Content)
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = textutil.Excerpt(content)
	}

	post := &entity.Post{
		Title:           req.Title,
		Slug:            slug,
		AuthorID:        req.UserID,
		CategoryID:      req.CategoryID,
		Content:         content,
		Excerpt:         excerpt,
		FeaturedImage:   req.FeaturedImage,
		Status:          status,
		CreatedAt:       now,
		PublishDate:     publishDate,
		MetaDescription: req.MetaDescription,
		Tags:            normalizeTags(req.Tags),
	}
	postID, err := p.postRepo.AddPost(ctx, post)
	if err != nil {
		return nil, err
	}
	p.events.publish(ctx, entity.PostCreated, postID)
	return p.postRepo.GetPost(ctx, postID)
}

func (p *Post) EditPost(ctx context.Context, req *entity.EditPostRequest) (*entity.Post, error) {
	post, err := p.postRepo.GetPostBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := requireAuthorOrStaff(ctx, p.userRepo, req.UserID, post.AuthorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.NewSlug != nil {
		post.Slug = *req.NewSlug
		if post.Slug == "" {
			post.Slug = textutil.Slugify(post.Title)
		}
		if post.Slug == "" {
			return nil, usecase.ErrInvalidRequest
		}
	}
	if req.CategoryID != nil {
		// 0 снимает категорию с поста
		if *req.CategoryID == 0 {
			post.CategoryID = nil
		} else {
			if err := p.checkCategory(ctx, req.CategoryID); err != nil {
				return nil, err
			}
			post.CategoryID = req.CategoryID
		}
	}
	if req.Content != nil {
		post.Content = textutil.Sanitize(*req.Content)
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if post.Excerpt == "" {
		post.Excerpt = textutil.Excerpt(post.Content)
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, usecase.ErrInvalidRequest
		}
		post.Status = *req.Status
	}
	if req.PublishDate != nil {
		post.PublishDate = *req.PublishDate
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}
	post.Tags = nil
	if req.Tags != nil {
		post.Tags = normalizeTags(*req.Tags)
	}

	if err := p.postRepo.EditPost(ctx, post); err != nil {
		return nil, err
	}
	p.events.publish(ctx, entity.PostUpdated, post.ID)
	return p.postRepo.GetPost(ctx, post.ID)
}

func (p *Post) DeletePost(ctx context.Context, req *entity.DeletePostRequest) error {
	post, err := p.postRepo.GetPostBySlug(ctx, req.Slug)
	if err != nil {
		return err
	}
	if err := requireAuthorOrStaff(ctx, p.userRepo, req.UserID, post.AuthorID); err != nil {
		return err
	}
	if err := p.postRepo.DeletePost(ctx, post.ID); err != nil {
		return err
	}
	p.events.publish(ctx, entity.PostDeleted, post.ID)
	return nil
}

func (p *Post) SetPostsStatus(ctx context.Context, req *entity.BulkPostStatusRequest) (int, error) {
	if err := requireStaff(ctx, p.userRepo, req.UserID); err != nil {
		return 0, err
	}
	if !req.Status.IsValid() || len(req.Slugs) == 0 {
		return 0, usecase.ErrInvalidRequest
	}
	updated, err := p.postRepo.SetPostsStatus(ctx, req.Slugs, req.Status)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		p.events.publish(ctx, entity.PostUpdated, 0)
	}
	return updated, nil
}
