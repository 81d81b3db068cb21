package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
	reportingsvc "github.com/mamadbah2/shopdesk/internal/service/reporting"
)

const dateOnlyLayout = "2006-01-02"

// ReportHandler handles sales history HTTP endpoints.
type ReportHandler struct {
	svc    *reportingsvc.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reportingsvc.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Summary returns the aggregate totals for the requested window.
func (h *ReportHandler) Summary(c *gin.Context) {
	enriched, ok := h.enrichedRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Summarize(enriched))
}

// Daily returns per-calendar-day totals for the requested window, ascending.
func (h *ReportHandler) Daily(c *gin.Context) {
	enriched, ok := h.enrichedRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.DailyTotals(enriched))
}

// Top returns the top products for the requested window, ranked by the
// metric query parameter (sales or profit), truncated to n.
func (h *ReportHandler) Top(c *gin.Context) {
	metric, err := reportingsvc.ParseMetric(c.DefaultQuery("metric", string(reportingsvc.MetricSales)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
		return
	}

	enriched, ok := h.enrichedRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.TopByMetric(enriched, metric, n))
}

// Sales returns the raw sale records of the window joined with product data.
func (h *ReportHandler) Sales(c *gin.Context) {
	enriched, ok := h.enrichedRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, enriched)
}

func (h *ReportHandler) enrichedRange(c *gin.Context) ([]models.EnrichedSale, bool) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	records, err := h.svc.SalesInRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}

	enriched, err := h.svc.EnrichWithProduct(c.Request.Context(), records)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return enriched, true
}

// parseWindow reads the optional start/end query parameters. Both accept
// RFC 3339 timestamps or bare dates; a bare end date covers its whole day.
// Defaults span all time up to now.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Now()

	if raw := c.Query("start"); raw != "" {
		parsed, _, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}

	if raw := c.Query("end"); raw != "" {
		parsed, dateOnly, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if dateOnly {
			parsed = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		end = parsed
	}

	return start, end, nil
}

func parseTimeParam(raw string) (time.Time, bool, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, false, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid time %q, want RFC 3339 or YYYY-MM-DD", raw)
	}
	return parsed, true, nil
}
