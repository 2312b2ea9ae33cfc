package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type Category struct {
	categoryUseCase usecase.Category
	postUseCase     usecase.Post
	authManager     utils.Auth
}

func NewCategory(categoryUseCase usecase.Category, postUseCase usecase.Post, authManager utils.Auth) *Category {
	return &Category{
		categoryUseCase: categoryUseCase,
		postUseCase:     postUseCase,
		authManager:     authManager,
	}
}

func (ca *Category) Configure(server *echo.Group) {
	server.GET("", ca.GetCategories)
	server.POST("", ca.AddCategory)
	server.GET("/:slug", ca.GetCategory)
	server.PUT("/:slug", ca.EditCategory)
	server.DELETE("/:slug", ca.DeleteCategory)
	server.GET("/:slug/posts", ca.GetCategoryPosts)
}

func (ca *Category) GetCategories(c echo.Context) error {
	categories, err := ca.categoryUseCase.GetCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"categories": categories,
	})
}

func (ca *Category) GetCategory(c echo.Context) error {
	category, err := ca.categoryUseCase.GetCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// GetCategoryPosts отдаёт посты категории с теми же параметрами, что и общий список
func (ca *Category) GetCategoryPosts(c echo.Context) error {
	category, err := ca.categoryUseCase.GetCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	var request entity.GetPostsRequest
	if err := utils.ReadQuery(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = ca.authManager.UserIDFromContext(c)
	request.Category = category.Slug

	posts, err := ca.postUseCase.GetPosts(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"category": category,
		"posts":    posts,
	})
}

func (ca *Category) AddCategory(c echo.Context) error {
	userID, err := ca.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.CategoryRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID

	category, err := ca.categoryUseCase.AddCategory(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (ca *Category) EditCategory(c echo.Context) error {
	userID, err := ca.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.CategoryRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID
	request.Slug = c.Param("slug")

	category, err := ca.categoryUseCase.EditCategory(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (ca *Category) DeleteCategory(c echo.Context) error {
	userID, err := ca.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := ca.categoryUseCase.DeleteCategory(c.Request().Context(), userID, c.Param("slug")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
