package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	fruitctrl "fruitfarm/pkg/fruit/controller"
	invctrl "fruitfarm/pkg/inventory/controller"
	"fruitfarm/pkg/metrics"
	"fruitfarm/pkg/middleware"
	plantctrl "fruitfarm/pkg/plantation/controller"
)

func New(
	e *echo.Echo,
	log *zap.Logger,
	plantationCtrl plantctrl.PlantationController,
	fruitCtrl fruitctrl.FruitController,
	inventoryCtrl invctrl.InventoryController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLog(log))

	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	p := e.Group("/plantations")
	p.POST("", plantationCtrl.Create)
	p.GET("", plantationCtrl.List)
	p.GET("/summary", plantationCtrl.Summary)
	p.GET("/export", plantationCtrl.Export)
	p.POST("/test", plantationCtrl.SeedTest)
	p.DELETE("/test", plantationCtrl.PurgeTest)
	p.PATCH("/:id/test", plantationCtrl.MarkTest)

	e.GET("/fruits", fruitCtrl.List)
	e.POST("/fruits/import", fruitCtrl.Import)

	inv := e.Group("/inventory")
	inv.GET("", inventoryCtrl.Get)
	inv.POST("/harvest", inventoryCtrl.Harvest)
	inv.POST("/sell", inventoryCtrl.Sell)
	inv.POST("/sell-all", inventoryCtrl.SellAll)
	inv.GET("/value", inventoryCtrl.Value)
	return e
}
