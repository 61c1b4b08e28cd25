package xlsxGenerator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

type XLSXGenerator struct {
	cfg *config.Config
}

func New(cfg *config.Config) *XLSXGenerator {
	return &XLSXGenerator{cfg: cfg}
}

// Generate builds the export workbook. Sheets with no data are omitted; an
// entirely empty report is an error.
func (g *XLSXGenerator) Generate(ctx context.Context, report model.IndexReport) (fileBytes []byte, fileName string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	sheets := 0

	if len(report.Performance) > 0 {
		if err := g.fillPerformanceSheet(f, report.Performance); err != nil {
			return nil, "", err
		}
		sheets++
	}

	if len(report.FirstComposition.Stocks) > 0 {
		if err := g.fillCompositionSheet(f, report.FirstComposition); err != nil {
			return nil, "", err
		}
		sheets++
	}

	if len(report.LastComposition.Stocks) > 0 && !report.LastComposition.Date.Equal(report.FirstComposition.Date) {
		if err := g.fillCompositionSheet(f, report.LastComposition); err != nil {
			return nil, "", err
		}
		sheets++
	}

	if hasChangeRows(report.Changes) {
		if err := g.fillChangesSheet(f, report.Changes); err != nil {
			return nil, "", err
		}
		sheets++
	}

	if sheets == 0 {
		return nil, "", errors.New("no data to export")
	}

	// drop the default "Sheet1"
	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	fileName = fmt.Sprintf(
		"%s_%s_to_%s.xlsx",
		g.cfg.Export.FileNamePrefix,
		report.StartDate.Format(dateLayout),
		report.EndDate.Format(dateLayout),
	)

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op), slog.String("fileName", fileName), slog.Int("sheets", sheets))

	return buf.Bytes(), fileName, nil
}

func (g *XLSXGenerator) fillPerformanceSheet(f *excelize.File, performance []model.PerformanceEntry) error {
	sheetName := "Index Performance"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return err
	}

	_ = f.SetCellStr(sheetName, "A1", "date")
	_ = f.SetCellStr(sheetName, "B1", "daily_return")
	_ = f.SetCellStr(sheetName, "C1", "cumulative_return")
	if err := f.SetCellStyle(sheetName, "A1", "C1", headerStyle); err != nil {
		return err
	}

	pctFormat := "0.00%"
	pctStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pctFormat})
	if err != nil {
		return err
	}

	for i, entry := range performance {
		row := i + 2
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), entry.Date.Format(dateLayout))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.DailyReturn)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.CumulativeReturn)
	}

	if len(performance) > 0 {
		lastRow := len(performance) + 1
		if err := f.SetCellStyle(sheetName, "B2", fmt.Sprintf("C%d", lastRow), pctStyle); err != nil {
			return err
		}
	}

	return nil
}

func (g *XLSXGenerator) fillCompositionSheet(f *excelize.File, snapshot model.CompositionSnapshot) error {
	sheetName := fmt.Sprintf("Composition %s", snapshot.Date.Format(dateLayout))
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#d9ead3"},
		},
	})
	if err != nil {
		return err
	}

	_ = f.SetCellStr(sheetName, "A1", "ticker")
	_ = f.SetCellStr(sheetName, "B1", "weight")
	_ = f.SetCellStr(sheetName, "C1", "rank")
	_ = f.SetCellStr(sheetName, "D1", "name")
	_ = f.SetCellStr(sheetName, "E1", "sector")
	_ = f.SetCellStr(sheetName, "F1", "exchange")
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return err
	}

	for i, stock := range snapshot.Stocks {
		row := i + 2
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), stock.Ticker)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), stock.Weight)
		_ = f.SetCellInt(sheetName, fmt.Sprintf("C%d", row), int64(stock.Rank))
		_ = f.SetCellStr(sheetName, fmt.Sprintf("D%d", row), stock.Name)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("E%d", row), stock.Sector)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("F%d", row), stock.Exchange)
	}

	return nil
}

func (g *XLSXGenerator) fillChangesSheet(f *excelize.File, changes []model.CompositionChange) error {
	sheetName := "Composition Changes"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#f9cb9c"},
		},
	})
	if err != nil {
		return err
	}

	_ = f.SetCellStr(sheetName, "A1", "date")
	_ = f.SetCellStr(sheetName, "B1", "ticker")
	_ = f.SetCellStr(sheetName, "C1", "change_type")
	if err := f.SetCellStyle(sheetName, "A1", "C1", headerStyle); err != nil {
		return err
	}

	row := 1
	for _, change := range changes {
		dateStr := change.Date.Format(dateLayout)
		for _, ticker := range change.Added {
			row++
			writeChangeRow(f, sheetName, row, dateStr, ticker, "Added")
		}
		for _, ticker := range change.Removed {
			row++
			writeChangeRow(f, sheetName, row, dateStr, ticker, "Removed")
		}
	}

	return nil
}

func writeChangeRow(f *excelize.File, sheetName string, row int, date, ticker, changeType string) {
	_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), date)
	_ = f.SetCellStr(sheetName, fmt.Sprintf("B%d", row), ticker)
	_ = f.SetCellStr(sheetName, fmt.Sprintf("C%d", row), changeType)
}

func hasChangeRows(changes []model.CompositionChange) bool {
	for _, change := range changes {
		if len(change.Added) > 0 || len(change.Removed) > 0 {
			return true
		}
	}
	return false
}
