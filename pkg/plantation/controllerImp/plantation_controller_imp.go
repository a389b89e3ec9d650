package controllerImp

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fruitfarm/pkg/plantation/controller"
	"fruitfarm/pkg/plantation/export"
	"fruitfarm/pkg/plantation/repository"
	"fruitfarm/pkg/plantation/service"
	"fruitfarm/pkg/plantation/serviceImp"
)

type PlantationCtrl struct {
	svc    service.PlantationService
	seeder service.Seeder
}

func New(svc service.PlantationService, seeder service.Seeder) controller.PlantationController {
	return &PlantationCtrl{svc: svc, seeder: seeder}
}

type createReq struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type createResp struct {
	Plantation any    `json:"plantation"`
	Message    string `json:"message"`
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSpacingConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoCompatibleFruit):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (h *PlantationCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Lat == nil || req.Lon == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lat and lon are required"})
	}
	out, err := h.svc.Create(c.Request().Context(), *req.Lat, *req.Lon)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !out.Created() {
		return c.JSON(rejectionStatus(out.Rejection), map[string]string{"error": out.Message})
	}
	return c.JSON(http.StatusCreated, createResp{Plantation: out.Plantation, Message: out.Message})
}

func (h *PlantationCtrl) List(c echo.Context) error {
	ps, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *PlantationCtrl) Summary(c echo.Context) error {
	s, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *PlantationCtrl) SeedTest(c echo.Context) error {
	logs, err := h.seeder.SeedTest(c.Request().Context(), serviceImp.DefaultSeeds)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error(), "logs": logs})
	}
	return c.JSON(http.StatusOK, map[string]any{"logs": logs})
}

func (h *PlantationCtrl) PurgeTest(c echo.Context) error {
	n, err := h.svc.PurgeTest(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"removed": n})
}

func (h *PlantationCtrl) MarkTest(c echo.Context) error {
	err := h.svc.MarkTest(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlantationCtrl) Export(c echo.Context) error {
	f, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ps, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, f, ps); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="plantations.`+string(f)+`"`)
	return c.Blob(http.StatusOK, f.ContentType(), buf.Bytes())
}
