package indexService

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
)

// Export builds the xlsx workbook for [start, end]. With cloud storage wired
// the file is uploaded and the result carries a download link, otherwise the
// raw bytes are returned for streaming.
func (s *IndexService) Export(ctx context.Context, start, end time.Time) (file model.ExportFile, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.Export"

	slog.Debug("Export start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("Export finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	report, err := s.collectReport(ctx, start, end)
	if err != nil {
		return model.ExportFile{}, err
	}

	fileBytes, fileName, err := s.reportGen.Generate(ctx, report)
	if err != nil {
		slog.Error("got error from reportGen.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.ExportFile{}, err
	}

	if s.cloudStorage == nil {
		return model.ExportFile{FileName: fileName, Content: fileBytes}, nil
	}

	downloadLink, err := s.cloudStorage.UploadFile(ctx, bytes.NewReader(fileBytes), fileName)
	if err != nil {
		slog.Error("got error from cloudStorage.UploadFile", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.ExportFile{}, err
	}

	return model.ExportFile{FileName: fileName, DownloadUrl: downloadLink}, nil
}

func (s *IndexService) collectReport(ctx context.Context, start, end time.Time) (model.IndexReport, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "IndexService.collectReport"

	report := model.IndexReport{StartDate: start, EndDate: end}

	performance, err := s.repo.GetIndexPerformance(ctx, start, end)
	if err != nil {
		slog.Error("got error from repo.GetIndexPerformance", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.IndexReport{}, err
	}
	report.Performance = performance

	tradingDates, err := s.repo.GetTradingDates(ctx, start, end)
	if err != nil {
		slog.Error("got error from repo.GetTradingDates", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.IndexReport{}, err
	}

	if len(tradingDates) > 0 {
		firstDate := tradingDates[0]
		lastDate := tradingDates[len(tradingDates)-1]

		firstComposition, err := s.repo.GetIndexComposition(ctx, firstDate)
		if err != nil {
			slog.Error("got error from repo.GetIndexComposition", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return model.IndexReport{}, err
		}
		report.FirstComposition = model.CompositionSnapshot{Date: firstDate, Stocks: firstComposition}

		if !lastDate.Equal(firstDate) {
			lastComposition, err := s.repo.GetIndexComposition(ctx, lastDate)
			if err != nil {
				slog.Error("got error from repo.GetIndexComposition", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return model.IndexReport{}, err
			}
			report.LastComposition = model.CompositionSnapshot{Date: lastDate, Stocks: lastComposition}
		}
	}

	changes, err := s.diffCompositions(ctx, start, end)
	if err != nil {
		return model.IndexReport{}, err
	}
	report.Changes = changes

	return report, nil
}
