// Package importer reads fruit catalogs from JSON, YAML, CSV or XLSX files.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"fruitfarm/entities"
	"fruitfarm/pkg/fruit"
)

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) ([]entities.FruitSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return fruit.DecodeJSON(b)
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return DecodeYAML(b)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return DecodeCSV(f)
	case ".xlsx":
		x, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer x.Close()
		return decodeWorkbook(x)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// Load is LoadFile for an already opened reader; name only selects the format.
func Load(name string, r io.Reader) ([]entities.FruitSpec, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return fruit.DecodeJSON(b)
	case ".yaml", ".yml":
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return DecodeYAML(b)
	case ".csv":
		return DecodeCSV(r)
	case ".xlsx":
		x, err := excelize.OpenReader(r)
		if err != nil {
			return nil, err
		}
		defer x.Close()
		return decodeWorkbook(x)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(name))
	}
}

func DecodeYAML(b []byte) ([]entities.FruitSpec, error) {
	var specs []entities.FruitSpec
	if err := yaml.Unmarshal(b, &specs); err != nil {
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}
	return specs, nil
}

func DecodeCSV(r io.Reader) ([]entities.FruitSpec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return parseRows(head, rows)
}

func decodeWorkbook(x *excelize.File) ([]entities.FruitSpec, error) {
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheet")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}
	return parseRows(rows[0], rows[1:])
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

const factorPrefix = "factor:"

// parseRows maps a header row plus data rows to specs. Column names are
// matched loosely; "factor:<condition>" columns fill the weather table and
// regions are separated by ';' or '|'.
func parseRows(head []string, rows [][]string) ([]entities.FruitSpec, error) {
	hmap := map[string]int{}
	factorCols := map[int]string{}
	for i, h := range head {
		hmap[norm(h)] = i
		if lh := strings.ToLower(strings.TrimSpace(h)); strings.HasPrefix(lh, factorPrefix) {
			factorCols[i] = strings.TrimSpace(strings.TrimPrefix(lh, factorPrefix))
		}
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cName := findAny("name", "nom", "fruit")
	cRegions := findAny("regions", "zones", "climates", "climats")
	if cName == -1 || cRegions == -1 {
		return nil, fmt.Errorf("catalog sheet missing required columns. Found headers: %v\nNeed at least: name, regions", head)
	}
	cIcon := findAny("icon", "icone")
	cSowStart := findAny("sowing_start", "semis_debut")
	cSowEnd := findAny("sowing_end", "semis_fin")
	cHarvStart := findAny("harvest_start", "recolte_debut")
	cHarvEnd := findAny("harvest_end", "recolte_fin")
	cYield := findAny("yield_per_m2", "rendement_m2", "yield")
	cCost := findAny("unit_cost", "cout_exploitation_unitaire", "cost")
	cPrice := findAny("unit_price", "prix_vente_unitaire", "price")

	var out []entities.FruitSpec
	for n, rec := range rows {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		num := func(idx int) (float64, error) {
			v := get(idx)
			if v == "" {
				return 0, nil
			}
			return strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		}
		if get(cName) == "" {
			continue // blank line
		}

		s := entities.FruitSpec{
			Name:         get(cName),
			Icon:         get(cIcon),
			SowingStart:  get(cSowStart),
			SowingEnd:    get(cSowEnd),
			HarvestStart: get(cHarvStart),
			HarvestEnd:   get(cHarvEnd),
		}
		var err error
		if s.YieldPerM2, err = num(cYield); err != nil {
			return nil, fmt.Errorf("row %d: yield: %w", n+2, err)
		}
		if s.UnitCost, err = num(cCost); err != nil {
			return nil, fmt.Errorf("row %d: cost: %w", n+2, err)
		}
		if s.UnitPrice, err = num(cPrice); err != nil {
			return nil, fmt.Errorf("row %d: price: %w", n+2, err)
		}
		for _, r := range strings.FieldsFunc(get(cRegions), func(r rune) bool { return r == ';' || r == '|' }) {
			if r = strings.TrimSpace(r); r != "" {
				s.Regions = append(s.Regions, entities.ClimateZone(r))
			}
		}
		for idx, cond := range factorCols {
			v, err := num(idx)
			if err != nil {
				return nil, fmt.Errorf("row %d: factor %s: %w", n+2, cond, err)
			}
			if get(idx) == "" {
				continue
			}
			if s.WeatherFactor == nil {
				s.WeatherFactor = map[string]float64{}
			}
			s.WeatherFactor[cond] = v
		}
		out = append(out, s)
	}
	return out, nil
}
