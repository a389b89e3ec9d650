package controller

import "github.com/labstack/echo/v4"

type InventoryController interface {
	Get(c echo.Context) error
	Harvest(c echo.Context) error
	Sell(c echo.Context) error
	SellAll(c echo.Context) error
	Value(c echo.Context) error
}
