package postgres

import (
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"cms-backend/internal/entity"
)

// psql - построитель запросов с плейсхолдерами вида $1, $2, ...
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation проверяет, что ошибка вызвана нарушением уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func likePattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}

// applyPostFilter добавляет условия фильтра постов. Таблица post должна иметь алиас p.
func applyPostFilter(b sq.SelectBuilder, f entity.PostFilter) sq.SelectBuilder {
	if f.Status != "" {
		b = b.Where(sq.Eq{"p.status": string(f.Status)})
	}
	if f.AuthorID != 0 {
		b = b.Where(sq.Eq{"p.author_id": f.AuthorID})
	}
	if f.CategoryID != 0 {
		b = b.Where(sq.Eq{"p.category_id": f.CategoryID})
	}
	if f.CategorySlug != "" {
		b = b.Where("p.category_id IN (SELECT id FROM category WHERE slug = ?)", f.CategorySlug)
	}
	if f.Tag != "" {
		b = b.Where("p.id IN (SELECT pt.post_id FROM post_tag pt JOIN tag t ON t.id = pt.tag_id WHERE t.name = ?)", f.Tag)
	}
	if strings.TrimSpace(f.Search) != "" {
		pattern := likePattern(f.Search)
		b = b.Where(sq.Or{
			sq.ILike{"p.title": pattern},
			sq.ILike{"p.content": pattern},
			sq.ILike{"p.excerpt": pattern},
		})
	}
	if f.CreatedFrom != nil {
		b = b.Where(sq.GtOrEq{"p.created_at": *f.CreatedFrom})
	}
	if f.CreatedBefore != nil {
		b = b.Where(sq.Lt{"p.created_at": *f.CreatedBefore})
	}
	if f.CreatedUntil != nil {
		b = b.Where(sq.LtOrEq{"p.created_at": *f.CreatedUntil})
	}
	if f.PublishedBefore != nil {
		b = b.Where(sq.LtOrEq{"p.publish_date": *f.PublishedBefore})
	}
	if f.WithFeatured {
		b = b.Where(sq.NotEq{"p.featured_image": ""})
	}
	if f.ExcludeID != 0 {
		b = b.Where(sq.NotEq{"p.id": f.ExcludeID})
	}
	return b
}

// applyCommentFilter добавляет условия фильтра комментариев. Таблица comment должна иметь алиас cm.
func applyCommentFilter(b sq.SelectBuilder, f entity.CommentFilter) sq.SelectBuilder {
	if f.PostID != 0 {
		b = b.Where(sq.Eq{"cm.post_id": f.PostID})
	}
	if f.IsApproved != nil {
		b = b.Where(sq.Eq{"cm.is_approved": *f.IsApproved})
	}
	if strings.TrimSpace(f.Search) != "" {
		pattern := likePattern(f.Search)
		b = b.Where(sq.Or{
			sq.ILike{"cm.name": pattern},
			sq.ILike{"cm.email": pattern},
			sq.ILike{"cm.content": pattern},
		})
	}
	if f.CreatedFrom != nil {
		b = b.Where(sq.GtOrEq{"cm.created_at": *f.CreatedFrom})
	}
	return b
}

// Разрешённые поля сортировки. Всё остальное молча заменяется на значение по умолчанию.
var (
	postOrderColumns = map[string]string{
		"created_at":   "p.created_at",
		"updated_at":   "p.updated_at",
		"publish_date": "p.publish_date",
		"title":        "p.title",
	}
	commentOrderColumns = map[string]string{
		"created_at": "cm.created_at",
	}
)

// orderClause строит ORDER BY с добавлением id, чтобы порядок при равенстве был детерминирован
func orderClause(columns map[string]string, idColumn string, orderBy entity.OrderBy, fallback entity.OrderBy) []string {
	column, ok := columns[orderBy.Field]
	if !ok {
		column = columns[fallback.Field]
		orderBy = fallback
	}
	direction := "ASC"
	if orderBy.Desc {
		direction = "DESC"
	}
	return []string{column + " " + direction, idColumn + " " + direction}
}

func applyLimit(b sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}
