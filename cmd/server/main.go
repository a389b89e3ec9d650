package main

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"fruitfarm/app"
	"fruitfarm/config"
	"fruitfarm/router"

	// Controllers
	fruitCtrlImp "fruitfarm/pkg/fruit/controllerImp"
	healthCtrlImp "fruitfarm/pkg/health/controllerImp"
	invCtrlImp "fruitfarm/pkg/inventory/controllerImp"
	plantCtrlImp "fruitfarm/pkg/plantation/controllerImp"

	"fruitfarm/pkg/logger"
)

func main() {
	log := logger.FromEnv()
	defer log.Sync()

	// 1) Config
	cfg := config.Load(log)

	// 2) DB, stores, services
	a, err := app.Build(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	// 3) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	// Static dashboard, when present
	if _, err := os.Stat("static/index.html"); err == nil {
		e.Static("/static", "static")
		e.File("/", "static/index.html")
	} else {
		log.Debug("no static dashboard", zap.Error(err))
	}

	// 4) Controllers
	pCtrl := plantCtrlImp.New(a.Plantations, a.Seeder)
	fCtrl := fruitCtrlImp.New(a.Catalog)
	iCtrl := invCtrlImp.New(a.Inventory)
	hCtrl := healthCtrlImp.NewHealthCtrl(a.DB, a.Registry)

	// 5) Router
	r := router.New(e, log.Named("http"), pCtrl, fCtrl, iCtrl, hCtrl)

	// 6) Start
	log.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreBackend))
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
