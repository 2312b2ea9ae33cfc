package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"cms-backend/internal/repo"
)

const SessionCookieName = "session"

type Auth interface {
	CheckAuth(tokenString string) (int, error)
	CheckAuthFromContext(c echo.Context) (int, error)
	// UserIDFromContext возвращает ID авторизованного пользователя или 0 для анонима
	UserIDFromContext(c echo.Context) int
	CreateToken(userID int) (string, error)
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

type jwtLoginClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthManager struct {
	jwtSecretKey  []byte
	userRepo      repo.User
	tokenLifetime time.Duration
}

func NewAuthManager(jwtSecretKey []byte, userRepo repo.User, tokenLifetime time.Duration) *AuthManager {
	return &AuthManager{
		jwtSecretKey:  jwtSecretKey,
		userRepo:      userRepo,
		tokenLifetime: tokenLifetime,
	}
}

// CheckAuth проверяет подпись и срок действия токена и возвращает ID пользователя.
// Если токен невалиден, то возвращается ErrUnauthorized.
func (a *AuthManager) CheckAuth(tokenString string) (int, error) {
	claims := jwtLoginClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return -1, ErrUnauthorized
	}
	if !token.Valid || claims.UserID <= 0 {
		return -1, ErrUnauthorized
	}
	return claims.UserID, nil
}

// CheckAuthFromContext проверяет токен из куки и существование пользователя.
// Если пользователь не авторизован или токен невалиден, то возвращается ErrUnauthorized.
func (a *AuthManager) CheckAuthFromContext(c echo.Context) (int, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return -1, ErrUnauthorized
	}
	userID, err := a.CheckAuth(cookie.Value)
	if err != nil {
		return -1, err
	}
	// пользователь мог быть удалён, пока токен ещё действует
	_, err = a.userRepo.GetUser(c.Request().Context(), userID)
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		return -1, ErrUnauthorized
	case err != nil:
		return -1, errors.Join(ErrInternal, err)
	}
	return userID, nil
}

func (a *AuthManager) UserIDFromContext(c echo.Context) int {
	userID, err := a.CheckAuthFromContext(c)
	if err != nil {
		return 0
	}
	return userID
}

// CreateToken создает токен для пользователя
func (a *AuthManager) CreateToken(userID int) (string, error) {
	claims := jwtLoginClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecretKey)
}
