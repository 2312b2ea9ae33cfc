package service

import (
	"context"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
	"cms-backend/pkg/textutil"
)

type Category struct {
	categoryRepo repo.Category
	events       *EventPublisher
}

func NewCategory(categoryRepo repo.Category, events *EventPublisher) usecase.Category {
	return &Category{
		categoryRepo: categoryRepo,
		events:       events,
	}
}

func (c *Category) GetCategories(ctx context.Context) ([]*entity.Category, error) {
	return c.categoryRepo.GetCategories(ctx)
}

func (c *Category) GetCategory(ctx context.Context, slug string) (*entity.Category, error) {
	return c.categoryRepo.GetCategoryBySlug(ctx, slug)
}

func (c *Category) AddCategory(ctx context.Context, req *entity.CategoryRequest) (*entity.Category, error) {
	if err := requireUser(req.UserID); err != nil {
		return nil, err
	}
	category := &entity.Category{
		Name:        req.Name,
		Slug:        req.NewSlug,
		Description: req.Description,
	}
	if category.Slug == "" {
		category.Slug = textutil.Slugify(req.Name)
	}
	if category.Slug == "" {
		return nil, usecase.ErrInvalidRequest
	}

	categoryID, err := c.categoryRepo.AddCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.events.publish(ctx, entity.CategoryChanged, categoryID)
	return c.categoryRepo.GetCategory(ctx, categoryID)
}

func (c *Category) EditCategory(ctx context.Context, req *entity.CategoryRequest) (*entity.Category, error) {
	if err := requireUser(req.UserID); err != nil {
		return nil, err
	}
	category, err := c.categoryRepo.GetCategoryBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	if req.NewSlug != "" {
		category.Slug = req.NewSlug
	}

	if err := c.categoryRepo.EditCategory(ctx, category); err != nil {
		return nil, err
	}
	c.events.publish(ctx, entity.CategoryChanged, category.ID)
	return c.categoryRepo.GetCategory(ctx, category.ID)
}

func (c *Category) DeleteCategory(ctx context.Context, userID int, slug string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	category, err := c.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := c.categoryRepo.DeleteCategory(ctx, category.ID); err != nil {
		return err
	}
	c.events.publish(ctx, entity.CategoryChanged, category.ID)
	return nil
}
