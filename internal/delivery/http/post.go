package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type Post struct {
	postUseCase    usecase.Post
	commentUseCase usecase.Comment
	authManager    utils.Auth
}

func NewPost(postUseCase usecase.Post, commentUseCase usecase.Comment, authManager utils.Auth) *Post {
	return &Post{
		postUseCase:    postUseCase,
		commentUseCase: commentUseCase,
		authManager:    authManager,
	}
}

func (p *Post) Configure(server *echo.Group) {
	server.GET("", p.GetPosts)
	server.POST("", p.AddPost)
	server.GET("/featured", p.GetFeaturedPosts)
	server.POST("/bulk-status", p.SetPostsStatus)
	server.GET("/:slug", p.GetPost)
	server.PUT("/:slug", p.EditPost)
	server.DELETE("/:slug", p.DeletePost)
	server.POST("/:slug/comments", p.AddComment)
}

func (p *Post) GetPosts(c echo.Context) error {
	var request entity.GetPostsRequest
	if err := utils.ReadQuery(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = p.authManager.UserIDFromContext(c)

	posts, err := p.postUseCase.GetPosts(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (p *Post) GetFeaturedPosts(c echo.Context) error {
	posts, err := p.postUseCase.GetFeaturedPosts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
	})
}

func (p *Post) GetPost(c echo.Context) error {
	post, err := p.postUseCase.GetPost(c.Request().Context(), &entity.GetPostRequest{
		UserID: p.authManager.UserIDFromContext(c),
		Slug:   c.Param("slug"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (p *Post) AddPost(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.AddPostRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID

	post, err := p.postUseCase.AddPost(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (p *Post) EditPost(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.EditPostRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID
	request.Slug = c.Param("slug")

	post, err := p.postUseCase.EditPost(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (p *Post) DeletePost(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	err = p.postUseCase.DeletePost(c.Request().Context(), &entity.DeletePostRequest{
		UserID: userID,
		Slug:   c.Param("slug"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (p *Post) SetPostsStatus(c echo.Context) error {
	userID, err := p.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.BulkPostStatusRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = userID

	updated, err := p.postUseCase.SetPostsStatus(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"updated": updated,
	})
}

// AddComment доступен без авторизации, комментарий появится после модерации
func (p *Post) AddComment(c echo.Context) error {
	var request entity.AddCommentRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.PostSlug = c.Param("slug")

	comment, err := p.commentUseCase.AddComment(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}
