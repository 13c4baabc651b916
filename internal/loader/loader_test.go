package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "salesdash/internal/errors"
	"salesdash/internal/tabular"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "sales.csv", "OrderNumber,Order Quantity,Channel\nSO-1,2,Export\nSO-2,3,Retail\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"OrderNumber", "Order Quantity", "Channel"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, tabular.KindString, table.Cell(0, 0).Kind)
	assert.Equal(t, 2.0, table.Cell(0, 1).Num)
	assert.Equal(t, "Export", table.Cell(0, 2).Str)
}

func TestLoadCSV_BOMStripped(t *testing.T) {
	path := writeCSV(t, "bom.csv", "\xEF\xBB\xBFOrderNumber,Channel\nSO-1,Export\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "OrderNumber", table.Columns[0])
}

func TestLoadCSV_ZeroWidthHeaderStripped(t *testing.T) {
	path := writeCSV(t, "zw.csv", "\u200B\u2060OrderNumber,Channel\nSO-1,Export\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "OrderNumber", table.Columns[0])
}

func TestLoadCSV_EmptySource(t *testing.T) {
	path := writeCSV(t, "empty.csv", "OrderNumber,Channel\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceEmpty))
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceLoad))
}

func TestLoadCSV_BlankRowsSkipped(t *testing.T) {
	path := writeCSV(t, "blank.csv", "OrderNumber,Channel\nSO-1,Export\n,\nSO-2,Retail\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales Orders"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"OrderNumber", "Order Quantity", "Unit Selling Price"},
		{"SO-1", 2, 10},
		{"SO-2", 1, 25.5},
	})

	table, err := LoadWorkbook(path, "Sales Orders")
	require.NoError(t, err)

	assert.Equal(t, []string{"OrderNumber", "Order Quantity", "Unit Selling Price"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, 25.5, table.Cell(1, 2).Num)
}

func TestLoadWorkbook_SheetDiscovery(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"OrderNumber", "Channel"},
		{"SO-1", "Export"},
	})

	table, err := LoadWorkbook(path, "")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadWorkbook_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"OrderNumber"},
		{"SO-1"},
	})

	_, err := LoadWorkbook(path, "Nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceLoad))
}

func TestLoadWorkbook_MissingFile(t *testing.T) {
	_, err := LoadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceLoad))
}
