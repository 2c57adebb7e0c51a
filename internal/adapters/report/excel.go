package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelFile is the name of the workbook artifact
const ExcelFile = "allocation.xlsx"

const (
	summarySheet = "Summary"
	assetsSheet  = "All Assets"
)

// ExcelWriter exports the summary and every asset to a workbook
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter { return &ExcelWriter{} }

func (w *ExcelWriter) Name() string { return FormatXLSX }

func (w *ExcelWriter) Write(rep *Report, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	if err := writeSummary(f, rep); err != nil {
		return "", fmt.Errorf("summary sheet: %w", err)
	}

	if _, err := f.NewSheet(assetsSheet); err != nil {
		return "", err
	}
	if err := writeAssets(f, rep); err != nil {
		return "", fmt.Errorf("assets sheet: %w", err)
	}

	path := filepath.Join(dir, ExcelFile)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func currencyLabel(rep *Report, label string) string {
	if rep.Currency == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, rep.Currency)
}

func writeSummary(f *excelize.File, rep *Report) error {
	rows := [][]interface{}{
		{"Group", "Total Assets", currencyLabel(rep, "Total Value"), "Variance %"},
	}
	for _, g := range rep.Groups {
		rows = append(rows, []interface{}{string(g.Name), g.Count, g.Total, g.VariancePct})
	}
	rows = append(rows, []interface{}{"TOTAL", rep.AssetCount, rep.TotalValue, "-"})

	if err := setRows(f, summarySheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "D", 18)
}

func writeAssets(f *excelize.File, rep *Report) error {
	rows := [][]interface{}{{
		"Group", "Asset Type", "Serial", "Name", "Model", "User", "Location",
		"Processor", "RAM (GB)", "Storage", "Gen", "GPU", "Remarks", "Purchase Type",
		currencyLabel(rep, "Market Price"), "Depreciation Rate", "Remark Category",
		currencyLabel(rep, "Current Value"),
	}}
	for _, a := range rep.Assets {
		rows = append(rows, []interface{}{
			string(a.Group), string(a.Type), a.Serial, a.Name, a.Model, a.User, a.Location,
			a.Processor, blankZero(a.RAMGB), a.Storage, blankZero(a.Generation), a.GPU,
			a.Remarks, string(a.PurchaseType), a.MarketPrice, a.DepreciationRate,
			a.RemarkCategory, a.CurrentValue,
		})
	}
	if err := setRows(f, assetsSheet, rows); err != nil {
		return err
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 8}, {"B", "B", 14}, {"C", "C", 8}, {"D", "D", 24}, {"E", "E", 28},
		{"F", "F", 24}, {"G", "G", 18}, {"H", "N", 14}, {"O", "O", 18}, {"P", "P", 14},
		{"Q", "Q", 16}, {"R", "R", 18},
	}
	for _, w := range widths {
		if err := f.SetColWidth(assetsSheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func blankZero(n int) interface{} {
	if n == 0 {
		return ""
	}
	return n
}
