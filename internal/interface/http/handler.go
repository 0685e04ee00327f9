package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

// Handler wires the HTTP transport to the chart service.
type Handler struct {
	chartSvc chart.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc chart.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc: chartSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// birthChartPayload mirrors chart.Request with pointers so absent required
// fields can be told apart from zero values such as midnight or the equator.
type birthChartPayload struct {
	Year      *int     `json:"year" binding:"required"`
	Month     *int     `json:"month" binding:"required"`
	Day       *int     `json:"day" binding:"required"`
	Hours     *int     `json:"hours" binding:"required"`
	Minutes   *int     `json:"minutes" binding:"required"`
	Seconds   int      `json:"seconds"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Timezone  *float64 `json:"timezone" binding:"required"`
	Ayanamsha string   `json:"ayanamsha"`
}

func (p birthChartPayload) toRequest() chart.Request {
	return chart.Request{
		Year:      *p.Year,
		Month:     *p.Month,
		Day:       *p.Day,
		Hours:     *p.Hours,
		Minutes:   *p.Minutes,
		Seconds:   p.Seconds,
		Latitude:  *p.Latitude,
		Longitude: *p.Longitude,
		Timezone:  *p.Timezone,
		Ayanamsha: p.Ayanamsha,
	}
}

// Root reports that the API is up.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sidereal Astrology API is running!"})
}

// BirthChart computes a sidereal natal chart.
func (h *Handler) BirthChart(c *gin.Context) {
	var payload birthChartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Compute(c.Request.Context(), payload.toRequest())
	if err != nil {
		abortWithError(c, fromDomainError(err, "chart_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History lists the most recent chart requests, newest first.
func (h *Handler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a positive integer", err))
			return
		}
		limit = parsed
	}

	entries, err := h.chartSvc.History(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err, "history_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
