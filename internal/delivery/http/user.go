package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

// SessionLifetime - срок жизни токена и сессионной куки
const SessionLifetime = 14 * 24 * time.Hour

type User struct {
	userUseCase   usecase.User
	postUseCase   usecase.Post
	authManager   utils.Auth
	cookieManager utils.Cookie
}

func NewUser(userUseCase usecase.User, postUseCase usecase.Post, authManager utils.Auth, cookieManager utils.Cookie) *User {
	return &User{
		userUseCase:   userUseCase,
		postUseCase:   postUseCase,
		authManager:   authManager,
		cookieManager: cookieManager,
	}
}

func (u *User) Configure(server *echo.Group) {
	server.POST("/register", u.Register)
	server.POST("/login", u.Login)
	server.POST("/logout", u.Logout)
	server.GET("/me", u.Me)
	server.PUT("/me", u.UpdateProfile)
	server.GET("", u.GetUsers)
	server.GET("/:id/posts", u.GetUserPosts)
}

func (u *User) startSession(c echo.Context, userID int) error {
	token, err := u.authManager.CreateToken(userID)
	if err != nil {
		c.Logger().Errorf("Ошибка при создании токена: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Произошла непредвиденная ошибка",
		})
	}
	c.SetCookie(u.cookieManager.SetSessionCookie(token, time.Now().Add(SessionLifetime)))
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": userID,
	})
}

func (u *User) Register(c echo.Context) error {
	var request entity.RegisterRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	userID, err := u.userUseCase.Register(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return u.startSession(c, userID)
}

func (u *User) Login(c echo.Context) error {
	var request entity.LoginRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	userID, err := u.userUseCase.Login(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return u.startSession(c, userID)
}

func (u *User) Logout(c echo.Context) error {
	c.SetCookie(u.cookieManager.ClearSessionCookie())
	return c.NoContent(http.StatusNoContent)
}

func (u *User) Me(c echo.Context) error {
	userID, err := u.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	profile, err := u.userUseCase.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (u *User) UpdateProfile(c echo.Context) error {
	userID, err := u.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.UpdateProfileRequest
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	if err := u.userUseCase.UpdateProfile(c.Request().Context(), userID, &request); err != nil {
		return respondError(c, err)
	}
	profile, err := u.userUseCase.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (u *User) GetUsers(c echo.Context) error {
	if _, err := u.authManager.CheckAuthFromContext(c); err != nil {
		return respondError(c, err)
	}
	users, err := u.userUseCase.GetUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
	})
}

func (u *User) GetUserPosts(c echo.Context) error {
	authorID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный идентификатор пользователя",
		})
	}
	author, err := u.userUseCase.GetUser(c.Request().Context(), authorID)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.GetPostsRequest
	if err := utils.ReadQuery(c, &request); err != nil {
		return badRequest(c, err)
	}
	request.UserID = u.authManager.UserIDFromContext(c)
	request.Author = author.ID

	posts, err := u.postUseCase.GetPosts(c.Request().Context(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"author": author,
		"posts":  posts,
	})
}
