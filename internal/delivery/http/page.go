package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type Page struct {
	pageUseCase usecase.Page
	authManager utils.Auth
}

func NewPage(pageUseCase usecase.Page, authManager utils.Auth) *Page {
	return &Page{
		pageUseCase: pageUseCase,
		authManager: authManager,
	}
}

func (p *Page) Configure(server *echo.Group) {
	server.GET("", p.GetPages)
	server.POST("", p.AddPage)
	server.GET("/:slug", p.GetPage)
	server.PUT("/:slug", p.EditPage)
	server.DELETE("/:slug", p.DeletePage)
}

func (p *Page) GetPages(c echo.Context) error {
	pages, err := p.pageUseCase.GetPages(c.Request().Context(), p.authManager.UserIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"pages": pages,
	})
}

func (p *Page) GetPage(c echo.Context) error {
	page, err := p.pageUseCase.GetPage(c.Request().Context(), p.authManager.UserIDFromContext(c), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (p *Page) AddPage(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.PageRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID

	page, err := p.pageUseCase.AddPage(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, page)
}

func (p *Page) EditPage(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.PageRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID
	request.Slug = c.Param("slug")

	page, err := p.pageUseCase.EditPage(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (p *Page) DeletePage(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := p.pageUseCase.DeletePage(c.Request().Context(), userID, c.Param("slug")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
