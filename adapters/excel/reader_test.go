package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeriesReader_CSV(t *testing.T) {
	path := writeTempCSV(t,
		"Kinetics,0,1.0\n"+
			"Kinetics,600,0.81\n"+
			"Calibration,0,0.004\n"+
			"Calibration,2,0.151\n"+
			"Kinetics,not-a-number,0.5\n"+ // skipped with a warning
			"Kinetics,1200,0.65\n")

	r := NewSeriesReader(path)

	kin, err := r.KineticsSeries()
	require.NoError(t, err)
	assert.Len(t, kin, 3)
	assert.Equal(t, 600.0, kin[1].X)
	assert.Equal(t, 0.81, kin[1].Y)

	cal, err := r.CalibrationSeries()
	require.NoError(t, err)
	assert.Len(t, cal, 2)
}

func TestSeriesReader_CSVMissingSeries(t *testing.T) {
	path := writeTempCSV(t, "Kinetics,0,1.0\n")
	r := NewSeriesReader(path)

	_, err := r.CalibrationSeries()
	assert.Error(t, err, "a series absent from the file is an error, not an empty result")
}

func TestSeriesReader_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measurements.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetKinetics))
	rows := [][]interface{}{
		{"time_s", "c_ratio"},
		{0, 1.0},
		{600, 0.81},
		{"bad", "row"}, // skipped with a warning
		{1200, 0.65},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetKinetics, cell, &row))
	}
	_, err := f.NewSheet(SheetCalibration)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(SheetCalibration, "A1", &[]interface{}{"conc_um", "abs"}))
	require.NoError(t, f.SetSheetRow(SheetCalibration, "A2", &[]interface{}{2, 0.151}))
	require.NoError(t, f.SaveAs(path))

	r := NewSeriesReader(path)

	kin, err := r.KineticsSeries()
	require.NoError(t, err)
	assert.Len(t, kin, 3)
	assert.Equal(t, 0.65, kin[2].Y)

	cal, err := r.CalibrationSeries()
	require.NoError(t, err)
	assert.Len(t, cal, 1)
}

func TestSeriesReader_MissingFile(t *testing.T) {
	r := NewSeriesReader(filepath.Join(t.TempDir(), "absent.xlsx"))
	_, err := r.KineticsSeries()
	assert.Error(t, err)
}
