package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type Comment struct {
	commentUseCase usecase.Comment
	authManager    utils.Auth
}

func NewComment(commentUseCase usecase.Comment, authManager utils.Auth) *Comment {
	return &Comment{
		commentUseCase: commentUseCase,
		authManager:    authManager,
	}
}

func (cm *Comment) Configure(server *echo.Group) {
	server.GET("", cm.GetComments)
	server.GET("/:id", cm.GetComment)
	server.POST("/:id/approve", cm.ApproveComment)
	server.POST("/:id/reject", cm.RejectComment)
	server.DELETE("/:id", cm.DeleteComment)
}

func (cm *Comment) GetComments(c echo.Context) error {
	var request entity.GetCommentsRequest
	if err := utils.ReadQuery(c, &request); err != nil {
		return badRequest(c, err)
	}
	// is_approved необязателен: без него отдаём комментарии в любом статусе
	if raw := c.QueryParam("is_approved"); raw != "" {
		isApproved, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, err)
		}
		request.IsApproved = &isApproved
	}
	request.UserID = cm.authManager.UserIDFromContext(c)

	comments, err := cm.commentUseCase.GetComments(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (cm *Comment) GetComment(c echo.Context) error {
	commentID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный идентификатор комментария",
		})
	}
	comment, err := cm.commentUseCase.GetComment(c.Request().Context(), &entity.GetCommentRequest{
		UserID:    cm.authManager.UserIDFromContext(c),
		CommentID: commentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (cm *Comment) ApproveComment(c echo.Context) error {
	return cm.moderate(c, true)
}

func (cm *Comment) RejectComment(c echo.Context) error {
	return cm.moderate(c, false)
}

func (cm *Comment) moderate(c echo.Context, approve bool) error {
	userID, err := cm.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный идентификатор комментария",
		})
	}
	err = cm.commentUseCase.ModerateComment(c.Request().Context(), &entity.ModerateCommentRequest{
		UserID:    userID,
		CommentID: commentID,
		Approve:   approve,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"is_approved": approve,
	})
}

func (cm *Comment) DeleteComment(c echo.Context) error {
	userID, err := cm.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный идентификатор комментария",
		})
	}
	err = cm.commentUseCase.DeleteComment(c.Request().Context(), &entity.DeleteCommentRequest{
		UserID:    userID,
		CommentID: commentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
