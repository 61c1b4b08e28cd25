package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func (ctrl *Controller) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestIDToCtx)
	r.Use(middleware.Recoverer)
	r.Use(logRequest)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", ctrl.Root)
	r.Post("/build-index", ctrl.BuildIndex)
	r.Get("/index-performance", ctrl.IndexPerformance)
	r.Get("/index-composition", ctrl.IndexComposition)
	r.Get("/composition-changes", ctrl.CompositionChanges)
	r.Post("/export-data", ctrl.ExportData)

	return r
}

// requestIDToCtx copies the chi request ID into the key the rest of the code
// reads rqID from.
func requestIDToCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := utils.CreateCtxWithRqID(r.Context(), middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		rqID := utils.GetRequestIDFromCtx(r.Context())

		slog.Info(
			"start request",
			slog.String("rqID", rqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info(
				"request finished",
				slog.String("rqID", rqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
