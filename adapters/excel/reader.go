// Package excel reads measurement series from spreadsheet exports so a
// deck can be rebuilt against fresh lab data without recompiling.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"photodeck/adapters/stats/fit"
	"photodeck/internal"
)

// Sheet (and CSV series-label) names the reader understands
const (
	SheetKinetics    = "Kinetics"
	SheetCalibration = "Calibration"
)

// SeriesReader reads (x, y) measurement series from .xlsx or .csv files.
// An .xlsx file carries one sheet per series; a .csv file carries three
// columns: series label, x, y.
type SeriesReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *internal.Logger
}

// NewSeriesReader creates a reader for the given file path
func NewSeriesReader(filePath string) *SeriesReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &SeriesReader{filePath: filePath, fileType: fileType, log: internal.DefaultLogger}
}

// KineticsSeries returns the kinetics measurement pairs
func (r *SeriesReader) KineticsSeries() ([]fit.Point, error) {
	return r.readSeries(SheetKinetics)
}

// CalibrationSeries returns the calibration measurement pairs
func (r *SeriesReader) CalibrationSeries() ([]fit.Point, error) {
	return r.readSeries(SheetCalibration)
}

func (r *SeriesReader) readSeries(name string) ([]fit.Point, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("measurements file not found: %s", r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVSeries(name)
	case "xlsx":
		return r.readExcelSeries(name)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelSeries reads one two-column sheet (header row, then x, y)
func (r *SeriesReader) readExcelSeries(sheet string) ([]fit.Point, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s must have a header row and at least one data row", sheet)
	}

	points := make([]fit.Point, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 2 {
			r.log.Warn("[SeriesReader] %s row %d has fewer than 2 cells, skipping", sheet, i+2)
			continue
		}
		p, ok := r.parsePoint(row[0], row[1])
		if !ok {
			r.log.Warn("[SeriesReader] %s row %d is not numeric, skipping", sheet, i+2)
			continue
		}
		points = append(points, p)
	}
	r.log.Info("[SeriesReader] Read %d points from %s sheet %s", len(points), r.filePath, sheet)
	return points, nil
}

// readCSVSeries filters a three-column CSV (series, x, y) by series label
func (r *SeriesReader) readCSVSeries(series string) ([]fit.Point, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	var points []fit.Point
	for i, rec := range records {
		if len(rec) < 3 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(rec[0]), series) {
			continue
		}
		p, ok := r.parsePoint(rec[1], rec[2])
		if !ok {
			r.log.Warn("[SeriesReader] CSV row %d is not numeric, skipping", i+1)
			continue
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no rows found for series %q in %s", series, r.filePath)
	}
	return points, nil
}

func (r *SeriesReader) parsePoint(xs, ys string) (fit.Point, bool) {
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return fit.Point{}, false
	}
	return fit.Point{X: x, Y: y}, true
}
