// Package export writes the plantation list as CSV, JSON or an Excel workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fruitfarm/entities"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, XLSX:
		return f, nil
	case "":
		return JSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

var header = []string{"id", "latitude", "longitude", "climate", "total_area_m2", "planted_area_m2", "planted_fruits", "created_at", "is_test"}

// fruitList renders planted fruits as "name=area" pairs in name order.
func fruitList(p entities.Plantation) string {
	names := make([]string, 0, len(p.PlantedFruits))
	for n := range p.PlantedFruits {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + "=" + strconv.Itoa(p.PlantedFruits[n])
	}
	return strings.Join(parts, ";")
}

func Write(w io.Writer, f Format, ps []entities.Plantation) error {
	switch f {
	case CSV:
		return WriteCSV(w, ps)
	case XLSX:
		return WriteXLSX(w, ps)
	default:
		return WriteJSON(w, ps)
	}
}

func WriteJSON(w io.Writer, ps []entities.Plantation) error {
	if ps == nil {
		ps = []entities.Plantation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(ps)
}

func WriteCSV(w io.Writer, ps []entities.Plantation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range ps {
		rec := []string{
			p.ID,
			strconv.FormatFloat(p.Geolocation.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Geolocation.Longitude, 'f', -1, 64),
			string(p.Climate),
			strconv.FormatFloat(p.TotalAreaM2, 'f', 2, 64),
			strconv.Itoa(p.PlantedArea()),
			fruitList(p),
			p.CreatedAt.Format(time.RFC3339),
			strconv.FormatBool(p.IsTest),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const (
	plantationSheet = "Plantations"
	fruitSheet      = "Fruits"
)

// WriteXLSX writes one row per plantation and a second sheet with one row
// per planted fruit.
func WriteXLSX(w io.Writer, ps []entities.Plantation) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", plantationSheet); err != nil {
		return err
	}
	if _, err := x.NewSheet(fruitSheet); err != nil {
		return err
	}

	if err := setRow(x, plantationSheet, 1, toAny(header)); err != nil {
		return err
	}
	if err := setRow(x, fruitSheet, 1, []any{"plantation_id", "climate", "fruit", "area_m2"}); err != nil {
		return err
	}

	fruitRow := 2
	for i, p := range ps {
		row := []any{
			p.ID, p.Geolocation.Latitude, p.Geolocation.Longitude, string(p.Climate),
			p.TotalAreaM2, p.PlantedArea(), fruitList(p), p.CreatedAt.Format(time.RFC3339), p.IsTest,
		}
		if err := setRow(x, plantationSheet, i+2, row); err != nil {
			return err
		}

		names := make([]string, 0, len(p.PlantedFruits))
		for n := range p.PlantedFruits {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if err := setRow(x, fruitSheet, fruitRow, []any{p.ID, string(p.Climate), n, p.PlantedFruits[n]}); err != nil {
				return err
			}
			fruitRow++
		}
	}
	return x.Write(w)
}

func setRow(x *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return x.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
