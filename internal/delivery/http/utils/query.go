package utils

import "github.com/labstack/echo/v4"

var queryBinder = &echo.DefaultBinder{}

// ReadQuery заполняет поля с тегом query из строки запроса. Тело и параметры пути не читаются
func ReadQuery(c echo.Context, v any) error {
	return queryBinder.BindQueryParams(c, v)
}
