package controllerImp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/database"
	"fruitfarm/pkg/blobstore"
	fruitImp "fruitfarm/pkg/fruit/repositoryImp"
	"fruitfarm/pkg/inventory/controller"
	"fruitfarm/pkg/inventory/repositoryImp"
	"fruitfarm/pkg/inventory/serviceImp"
)

func newCtrl(t *testing.T) controller.InventoryController {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "farm.db"), zap.NewNop())
	require.NoError(t, err)
	ledger := repositoryImp.New(db)
	require.NoError(t, serviceImp.Init(context.Background(), ledger, 1000))
	catalog := fruitImp.New(blobstore.NewMemStore(), "fruits.json", zap.NewNop())
	return New(serviceImp.NewInventoryService(ledger, catalog, serviceImp.Options{ExchangeRateEUR: 0.86}, zap.NewNop()))
}

func call(t *testing.T, h echo.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func TestInventoryEndpoints(t *testing.T) {
	h := newCtrl(t)

	rec := call(t, h.Get, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"balance":1000`)

	rec = call(t, h.Harvest, http.MethodPost, `{"fruit":"ananas","quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"quantity":50`)

	rec = call(t, h.Sell, http.MethodPost, `{"fruit":"ananas","quantity":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"revenue":250`)

	rec = call(t, h.Sell, http.MethodPost, `{"fruit":"ananas","quantity":1}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, h.Sell, http.MethodPost, `{"fruit":"durians","quantity":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, h.Harvest, http.MethodPost, `{"fruit":"ananas","quantity":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h.Harvest, http.MethodPost, `{"quantity":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h.Value, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"balance_eur"`)

	rec = call(t, h.SellAll, http.MethodPost, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"sold"`)
}
