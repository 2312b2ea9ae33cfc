package utils

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

func ReadJSON(c echo.Context, v any) error {
	err := json.NewDecoder(c.Request().Body).Decode(v)
	if err != nil {
		return err
	}
	return nil
}

// ReadValidJSON читает тело запроса и проверяет его по тегам validate
func ReadValidJSON(c echo.Context, v any) error {
	if err := ReadJSON(c, v); err != nil {
		return err
	}
	return Validate(v)
}
