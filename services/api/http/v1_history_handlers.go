package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aetherhq/aether/services/api/aggregate"
	"github.com/aetherhq/aether/services/api/domain"
	"github.com/aetherhq/aether/services/api/history"
)

// historyRow is one cleaned historical record in wire form.
type historyRow struct {
	Timestamp string             `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// handleV1History returns the cleaned historical records for one sensor,
// time-ordered.
// GET /api/v1/history/:sensor_id
func (s *Server) handleV1History(c *gin.Context) {
	sensorID := c.Param("sensor_id")
	if sensorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor_id is required"})
		return
	}

	if !s.registry.Has(sensorID) {
		respondError(c, domain.ErrSensorNotFound)
		return
	}

	records := history.SensorHistory(s.historical, sensorID)
	if len(records) == 0 {
		respondError(c, domain.ErrNoData)
		return
	}

	rows := make([]historyRow, 0, len(records))
	for _, rec := range records {
		values := make(map[string]float64, len(rec.Values))
		for name, v := range rec.Values {
			if v != nil {
				values[name] = *v
			}
		}
		rows = append(rows, historyRow{
			Timestamp: domain.FormatTimestamp(rec.Timestamp),
			Values:    values,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sensor_id": sensorID,
		"count":     len(rows),
		"records":   rows,
	})
}

// handleV1Distribution returns the per-region pm2.5 category percentage
// table for one calendar month.
// GET /api/v1/distribution/:year/:month
func (s *Server) handleV1Distribution(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1..12"})
		return
	}

	window := history.MonthWindow(s.historical, year, time.Month(month))
	dist, err := aggregate.Compute(window, s.registry, s.pm25, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dist})
}
