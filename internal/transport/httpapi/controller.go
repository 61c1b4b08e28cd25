package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/converter/apiConverter"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/service"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/go-chi/render"
)

const dateLayout = "2006-01-02"

type IndexService interface {
	Construct(ctx context.Context, start, end time.Time) (model.ConstructionResult, error)
	Performance(ctx context.Context, start, end time.Time) ([]model.PerformanceEntry, error)
	Composition(ctx context.Context, date time.Time) ([]model.CompositionStock, error)
	CompositionChanges(ctx context.Context, start, end time.Time) ([]model.CompositionChange, error)
	Export(ctx context.Context, start, end time.Time) (model.ExportFile, error)
}

type Controller struct {
	indexService IndexService
}

func NewController(indexService IndexService) *Controller {
	return &Controller{indexService: indexService}
}

func (ctrl *Controller) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"message": "Equal-Weighted Stock Index Tracker API is running"})
}

func (ctrl *Controller) BuildIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	req := &BuildIndexRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	result, err := ctrl.indexService.Construct(ctx, req.start, req.end)
	if err != nil {
		if errors.Is(err, service.ErrNoTradingData) || errors.Is(err, service.ErrInsufficientData) {
			_ = render.Render(w, r, errBadRequest(result.Message))
			return
		}
		slog.Error("got error from indexService.Construct", slog.String("rqID", rqID), slog.String("err", err.Error()))
		_ = render.Render(w, r, errInternal(result.Message))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, apiConverter.ConstructionResponse(result))
}

func (ctrl *Controller) IndexPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	start, err := queryDate(r, "start_date")
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	end, err := queryDate(r, "end_date")
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	entries, err := ctrl.indexService.Performance(ctx, start, end)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_ = render.Render(w, r, errNotFound("No performance data found for the given date range"))
			return
		}
		slog.Error("got error from indexService.Performance", slog.String("rqID", rqID), slog.String("err", err.Error()))
		_ = render.Render(w, r, errInternal("Internal Server Error"))
		return
	}

	render.JSON(w, r, apiConverter.PerformanceResponse(entries))
}

func (ctrl *Controller) IndexComposition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	date, err := queryDate(r, "date")
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	stocks, err := ctrl.indexService.Composition(ctx, date)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_ = render.Render(w, r, errNotFound(fmt.Sprintf("No composition data found for %s", date.Format(dateLayout))))
			return
		}
		slog.Error("got error from indexService.Composition", slog.String("rqID", rqID), slog.String("err", err.Error()))
		_ = render.Render(w, r, errInternal("Internal Server Error"))
		return
	}

	render.JSON(w, r, apiConverter.CompositionResponse(stocks))
}

func (ctrl *Controller) CompositionChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	start, err := queryDate(r, "start_date")
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	end, err := queryDate(r, "end_date")
	if err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	changes, err := ctrl.indexService.CompositionChanges(ctx, start, end)
	if err != nil {
		slog.Error("got error from indexService.CompositionChanges", slog.String("rqID", rqID), slog.String("err", err.Error()))
		_ = render.Render(w, r, errInternal("Internal Server Error"))
		return
	}

	render.JSON(w, r, apiConverter.ChangesResponse(changes))
}

func (ctrl *Controller) ExportData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	req := &ExportRequest{}
	if err := render.Bind(r, req); err != nil {
		_ = render.Render(w, r, errBadRequest(err.Error()))
		return
	}

	file, err := ctrl.indexService.Export(ctx, req.start, req.end)
	if err != nil {
		slog.Error("got error from indexService.Export", slog.String("rqID", rqID), slog.String("err", err.Error()))
		_ = render.Render(w, r, errInternal(fmt.Sprintf("Export failed: %s", err)))
		return
	}

	if file.DownloadUrl != "" {
		render.JSON(w, r, apiConverter.ExportResponse(file))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Error("can't write export file to response", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
}
