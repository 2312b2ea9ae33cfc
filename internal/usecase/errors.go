package usecase

import "errors"

var (
	// ErrUserForbidden - у пользователя нет прав на действие
	ErrUserForbidden = errors.New("user forbidden")
	// ErrInvalidCredentials - неверный логин или пароль
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRequest     = errors.New("invalid request")
	// ErrUnsupportedMediaType - загружаемый файл не является изображением
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
