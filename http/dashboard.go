package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glbter/fund-returns/chart"
	"github.com/glbter/fund-returns/entities"
	"github.com/glbter/fund-returns/returns"
)

type DashboardHandler struct {
	Logger         *zap.Logger
	Dataset        entities.Dataset
	DefaultPeriods []entities.Period
	Title          string
	Events         *RenderEvents
}

func (h DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	view, logger := h.render(r, "Index")

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, newPage(h.Title, h.Dataset, view, r.URL.Query())); err != nil {
		logger.Error(fmt.Errorf("execute template: %w", err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("write page: %w", err).Error())
	}
}

func (h DashboardHandler) Returns(w http.ResponseWriter, r *http.Request) {
	view, logger := h.render(r, "Returns")

	body, err := json.Marshal(view)
	if err != nil {
		logger.Error(fmt.Errorf("encode response: %w", err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Error(fmt.Errorf("write response: %w", err).Error())
	}
}

func (h DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "Chart"))

	format, err := chart.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		logger.Info(err.Error())
		w.WriteHeader(http.StatusNotFound)
		return
	}

	// exports back the page's static chart, so they are not reported as
	// renders of their own
	view := returns.Render(h.Dataset, h.selection(r))

	var buf bytes.Buffer
	if err := chart.Render(&buf, view.Chart, format); err != nil {
		if errors.Is(err, chart.ErrEmptyChart) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		logger.Error(fmt.Errorf("render chart: %w", err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("write chart: %w", err).Error())
	}
}

func (h DashboardHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// render runs one pass of the pipeline for the request and queues a
// render event without waiting for it to be published.
func (h DashboardHandler) render(r *http.Request, method string) (entities.View, *zap.Logger) {
	rid := uuid.New().String()
	logger := h.Logger.With(zap.String("method", method), zap.String("rid", rid))

	start := time.Now()
	view := returns.Render(h.Dataset, h.selection(r))
	logger.Debug("rendered",
		zap.Int("funds", len(view.Selection.Funds)),
		zap.Int("periods", len(view.Selection.Periods)),
		zap.Int("records", len(view.Records)),
		zap.Duration("duration", time.Since(start)),
	)

	if h.Events != nil {
		h.Events.Enqueue(entities.RenderEvent{
			ID:      rid,
			Periods: view.Selection.Periods,
			Funds:   view.Selection.Funds,
			Records: len(view.Records),
			At:      time.Now().UTC(),
		})
	}

	return view, logger
}

// selection reads the "fund" and "period" query parameters. A submitted
// form is taken as is, even with nothing ticked. Otherwise an axis that
// is absent falls back to its default.
func (h DashboardHandler) selection(r *http.Request) entities.Selection {
	q := r.URL.Query()
	def := entities.DefaultSelection(h.Dataset, h.DefaultPeriods...)
	submitted := q.Has("submitted")

	sel := entities.Selection{Funds: q["fund"]}
	for _, p := range q["period"] {
		sel.Periods = append(sel.Periods, entities.Period(p))
	}

	if !submitted && !q.Has("fund") {
		sel.Funds = def.Funds
	}
	if !submitted && !q.Has("period") {
		sel.Periods = def.Periods
	}

	return sel
}
