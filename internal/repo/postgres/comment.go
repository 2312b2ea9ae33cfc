package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type Comment struct {
	db *sqlx.DB
}

func NewComment(db *sqlx.DB) repo.Comment {
	return &Comment{db: db}
}

func commentSelect() sq.SelectBuilder {
	return psql.Select(
		"cm.id", "cm.post_id", "p.title AS post_title", "cm.name", "cm.email", "cm.content",
		"cm.is_approved", "cm.created_at",
	).
		From("comment cm").
		Join("post p ON p.id = cm.post_id")
}

func (c *Comment) CountComments(ctx context.Context, filter entity.CommentFilter) (int, error) {
	query, args, err := applyCommentFilter(psql.Select("COUNT(*)").From("comment cm"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := c.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Comment) ListComments(ctx context.Context, filter entity.CommentFilter, orderBy entity.OrderBy, limit, offset int) ([]*entity.Comment, error) {
	b := applyCommentFilter(commentSelect(), filter).
		OrderBy(orderClause(commentOrderColumns, "cm.id", orderBy, entity.OrderByCreatedDesc)...)
	query, args, err := applyLimit(b, limit, offset).ToSql()
	if err != nil {
		return nil, err
	}
	comments := make([]*entity.Comment, 0)
	if err := c.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Comment) GetComment(ctx context.Context, commentID int) (*entity.Comment, error) {
	query, args, err := commentSelect().Where(sq.Eq{"cm.id": commentID}).ToSql()
	if err != nil {
		return nil, err
	}
	var comment entity.Comment
	err = c.db.GetContext(ctx, &comment, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Comment) AddComment(ctx context.Context, comment *entity.Comment) (int, error) {
	query := `
		INSERT INTO comment (post_id, name, email, content, created_at, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var commentID int
	err := c.db.QueryRowxContext(ctx, query,
		comment.PostID,
		comment.Name,
		comment.Email,
		comment.Content,
		createdAt,
		comment.IsApproved,
	).Scan(&commentID)
	if err != nil {
		return 0, err
	}
	return commentID, nil
}

func (c *Comment) SetCommentApproved(ctx context.Context, commentID int, approved bool) error {
	result, err := c.db.ExecContext(ctx, `UPDATE comment SET is_approved = $1 WHERE id = $2`, approved, commentID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrCommentNotFound
	}
	return nil
}

func (c *Comment) DeleteComment(ctx context.Context, commentID int) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM comment WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrCommentNotFound
	}
	return nil
}
