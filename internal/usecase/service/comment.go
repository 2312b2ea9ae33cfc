package service

import (
	"context"
	"time"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
	"cms-backend/pkg/textutil"
)

const commentPageSize = 20

type Comment struct {
	commentRepo repo.Comment
	postRepo    repo.Post
	events      *EventPublisher
	now         func() time.Time
}

func NewComment(commentRepo repo.Comment, postRepo repo.Post, events *EventPublisher) usecase.Comment {
	return &Comment{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		events:      events,
		now:         time.Now,
	}
}

func (c *Comment) GetComments(ctx context.Context, req *entity.GetCommentsRequest) (*entity.CommentList, error) {
	filter := entity.CommentFilter{
		PostID:     req.PostID,
		IsApproved: req.IsApproved,
		Search:     req.Search,
	}
	if req.UserID == 0 {
		approved := true
		filter.IsApproved = &approved
	}

	page, size, offset := pagination(req.Page, req.Limit, commentPageSize)
	total, err := c.commentRepo.CountComments(ctx, filter)
	if err != nil {
		return nil, err
	}
	comments, err := c.commentRepo.ListComments(ctx, filter, entity.OrderByCreatedDesc, size, offset)
	if err != nil {
		return nil, err
	}
	return &entity.CommentList{
		Comments: comments,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

func (c *Comment) GetComment(ctx context.Context, req *entity.GetCommentRequest) (*entity.Comment, error) {
	comment, err := c.commentRepo.GetComment(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}
	if req.UserID == 0 && !comment.IsApproved {
		return nil, repo.ErrCommentNotFound
	}
	return comment, nil
}

func (c *Comment) AddComment(ctx context.Context, req *entity.AddCommentRequest) (*entity.Comment, error) {
	post, err := c.postRepo.GetPostBySlug(ctx, req.PostSlug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublishedAt(c.now()) {
		return nil, repo.ErrPostNotFound
	}

	content := textutil.StripTags(req.Content)
	if content == "" {
		return nil, usecase.ErrInvalidRequest
	}
	comment := &entity.Comment{
		PostID:    post.ID,
		Name:      req.Name,
		Email:     req.Email,
		Content:   content,
		CreatedAt: c.now(),
	}
	commentID, err := c.commentRepo.AddComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	c.events.publish(ctx, entity.CommentCreated, commentID)
	return c.commentRepo.GetComment(ctx, commentID)
}

func (c *Comment) ModerateComment(ctx context.Context, req *entity.ModerateCommentRequest) error {
	if err := requireUser(req.UserID); err != nil {
		return err
	}
	if err := c.commentRepo.SetCommentApproved(ctx, req.CommentID, req.Approve); err != nil {
		return err
	}
	eventType := entity.CommentRejected
	if req.Approve {
		eventType = entity.CommentApproved
	}
	c.events.publish(ctx, eventType, req.CommentID)
	return nil
}

func (c *Comment) DeleteComment(ctx context.Context, req *entity.DeleteCommentRequest) error {
	if err := requireUser(req.UserID); err != nil {
		return err
	}
	if err := c.commentRepo.DeleteComment(ctx, req.CommentID); err != nil {
		return err
	}
	c.events.publish(ctx, entity.CommentDeleted, req.CommentID)
	return nil
}
