package controller

import "github.com/labstack/echo/v4"

type PlantationController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Summary(c echo.Context) error
	SeedTest(c echo.Context) error
	PurgeTest(c echo.Context) error
	MarkTest(c echo.Context) error
	Export(c echo.Context) error
}
