package controllerImp

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/pkg/blobstore"
	"fruitfarm/pkg/fruit/repositoryImp"
)

func upload(t *testing.T, h echo.HandlerFunc, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if name != "" {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/fruits/import", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func TestListAndImport(t *testing.T) {
	catalog := repositoryImp.New(blobstore.NewMemStore(), "fruits.json", zap.NewNop())
	_, err := catalog.EnsureDefaults(context.Background())
	require.NoError(t, err)
	h := New(catalog)

	rec := httptest.NewRecorder()
	require.NoError(t, h.List(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/fruits", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 14)

	csv := "nom,regions,rendement_m2\nbananes,tropical,2.5\nkiwis,tempéré;mars,1.2\n"
	rec = upload(t, h.Import, "catalog.csv", csv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Imported int      `json:"imported"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Warnings, 1)

	specs, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, specs, 2)
}

func TestImportErrors(t *testing.T) {
	h := New(repositoryImp.New(blobstore.NewMemStore(), "fruits.json", zap.NewNop()))

	require.Equal(t, http.StatusBadRequest, upload(t, h.Import, "", "").Code)
	require.Equal(t, http.StatusUnprocessableEntity, upload(t, h.Import, "catalog.pdf", "x").Code)
	require.Equal(t, http.StatusUnprocessableEntity, upload(t, h.Import, "catalog.json", `[{"regions":["tropical"]}]`).Code)
}
