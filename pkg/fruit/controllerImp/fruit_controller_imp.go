package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fruitfarm/entities"
	"fruitfarm/pkg/fruit/controller"
	"fruitfarm/pkg/fruit/importer"
	"fruitfarm/pkg/fruit/repository"
)

type FruitCtrl struct{ catalog repository.Catalog }

func New(catalog repository.Catalog) controller.FruitController { return &FruitCtrl{catalog} }

func (h *FruitCtrl) List(c echo.Context) error {
	specs, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if specs == nil {
		specs = []entities.FruitSpec{}
	}
	return c.JSON(http.StatusOK, specs)
}

// Import replaces the catalog with an uploaded json, yaml, csv or xlsx file
// sent as the multipart field "file".
func (h *FruitCtrl) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	defer f.Close()

	specs, err := importer.Load(fh.Filename, f)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	warnings, err := h.catalog.Replace(c.Request().Context(), specs)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": err.Error(), "warnings": warnings})
	}
	if warnings == nil {
		warnings = []string{}
	}
	stored, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"imported": len(stored), "warnings": warnings})
}
