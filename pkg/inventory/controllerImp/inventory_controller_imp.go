package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fruitfarm/pkg/inventory/controller"
	"fruitfarm/pkg/inventory/repository"
	"fruitfarm/pkg/inventory/service"
)

type InventoryCtrl struct{ svc service.InventoryService }

func New(svc service.InventoryService) controller.InventoryController { return &InventoryCtrl{svc} }

type lineReq struct {
	Fruit    string `json:"fruit"`
	Quantity int    `json:"quantity"`
}

func status(err error) int {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, repository.ErrUnknownFruit):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *InventoryCtrl) Get(c echo.Context) error {
	snap, err := h.svc.Snapshot(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *InventoryCtrl) Harvest(c echo.Context) error {
	var req lineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Fruit == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "fruit is required"})
	}
	item, err := h.svc.Harvest(c.Request().Context(), req.Fruit, req.Quantity)
	if err != nil {
		return c.JSON(status(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryCtrl) Sell(c echo.Context) error {
	var req lineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Fruit == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "fruit is required"})
	}
	sale, err := h.svc.Sell(c.Request().Context(), req.Fruit, req.Quantity)
	if err != nil {
		return c.JSON(status(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *InventoryCtrl) SellAll(c echo.Context) error {
	report, err := h.svc.SellAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}

func (h *InventoryCtrl) Value(c echo.Context) error {
	v, err := h.svc.StockValue(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	eur, err := h.svc.BalanceEUR(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"stock": v, "balance_eur": eur})
}
