package service

import (
	"context"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
	"cms-backend/pkg/textutil"
)

type Page struct {
	pageRepo repo.Page
	events   *EventPublisher
}

func NewPage(pageRepo repo.Page, events *EventPublisher) usecase.Page {
	return &Page{
		pageRepo: pageRepo,
		events:   events,
	}
}

func (p *Page) GetPages(ctx context.Context, userID int) ([]*entity.Page, error) {
	return p.pageRepo.GetPages(ctx, userID == 0)
}

func (p *Page) GetPage(ctx context.Context, userID int, slug string) (*entity.Page, error) {
	page, err := p.pageRepo.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if userID == 0 && !page.IsPublished {
		return nil, repo.ErrPageNotFound
	}
	return page, nil
}

func (p *Page) AddPage(ctx context.Context, req *entity.PageRequest) (*entity.Page, error) {
	if err := requireUser(req.UserID); err != nil {
		return nil, err
	}
	page := &entity.Page{
		Title:           req.Title,
		Slug:            req.NewSlug,
		Content:         textutil.Sanitize(req.Content),
		MetaDescription: req.MetaDescription,
		IsPublished:     true,
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}
	if page.Slug == "" {
		page.Slug = textutil.Slugify(req.Title)
	}
	if page.Slug == "" {
		return nil, usecase.ErrInvalidRequest
	}

	pageID, err := p.pageRepo.AddPage(ctx, page)
	if err != nil {
		return nil, err
	}
	p.events.publish(ctx, entity.PageChanged, pageID)
	return p.pageRepo.GetPageBySlug(ctx, page.Slug)
}

func (p *Page) EditPage(ctx context.Context, req *entity.PageRequest) (*entity.Page, error) {
	if err := requireUser(req.UserID); err != nil {
		return nil, err
	}
	page, err := p.pageRepo.GetPageBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	page.Title = req.Title
	page.Content = textutil.Sanitize(req.Content)
	page.MetaDescription = req.MetaDescription
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}
	if req.NewSlug != "" {
		page.Slug = req.NewSlug
	}

	if err := p.pageRepo.EditPage(ctx, page); err != nil {
		return nil, err
	}
	p.events.publish(ctx, entity.PageChanged, page.ID)
	return p.pageRepo.GetPageBySlug(ctx, page.Slug)
}

func (p *Page) DeletePage(ctx context.Context, userID int, slug string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	page, err := p.pageRepo.GetPageBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := p.pageRepo.DeletePage(ctx, page.ID); err != nil {
		return err
	}
	p.events.publish(ctx, entity.PageChanged, page.ID)
	return nil
}
