package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fruitfarm/entities"
)

func TestDecodeCSVAliases(t *testing.T) {
	head := "name,regions,rendement_m2,prix_vente_unitaire,factor:gel\n"
	body := "bananes,tropical;subtropical,5,\"2,5\",0.5\n,,,,\npommes,tempéré,4,2.5,\n"
	specs, err := DecodeCSV(strings.NewReader(head + body))
	require.NoError(t, err)
	require.Len(t, specs, 2)

	require.Equal(t, "bananes", specs[0].Name)
	require.Equal(t, []entities.ClimateZone{"tropical", "subtropical"}, specs[0].Regions)
	require.Equal(t, 5.0, specs[0].YieldPerM2)
	require.Equal(t, 2.5, specs[0].UnitPrice)
	require.Equal(t, 0.5, specs[0].WeatherFactor["gel"])

	require.Equal(t, []entities.ClimateZone{"tempéré"}, specs[1].Regions)
	require.Nil(t, specs[1].WeatherFactor)
}

func TestDecodeCSVMissingColumns(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("fruit,price\nbananes,2\n"))
	require.ErrorContains(t, err, "missing required columns")
}

func TestDecodeCSVBadNumber(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("name,regions,price\nbananes,tropical,cheap\n"))
	require.ErrorContains(t, err, "row 2")
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "- name: citron\n  unit_price: 2.2\n  regions: [mediterranean]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	require.Equal(t, "citron", specs[0].Name)
	require.Equal(t, []entities.ClimateZone{entities.Mediterranean}, specs[0].Regions)
}

func TestLoadFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"Name", "Regions", "Unit price"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"figues", "mediterranean", 4.5}))
	require.NoError(t, x.SaveAs(path))
	require.NoError(t, x.Close())

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	require.Equal(t, "figues", specs[0].Name)
	require.Equal(t, 4.5, specs[0].UnitPrice)
}

func TestLoadFileUnsupported(t *testing.T) {
	_, err := LoadFile("catalog.toml")
	require.Error(t, err)
}
