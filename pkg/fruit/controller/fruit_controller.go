package controller

import "github.com/labstack/echo/v4"

type FruitController interface {
	List(c echo.Context) error
	Import(c echo.Context) error
}
