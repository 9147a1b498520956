package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aetherhq/aether/services/api/domain"
)

// ingestRequest is the incoming reading payload.
type ingestRequest struct {
	SensorID  string         `json:"sensor_id"`
	Readings  map[string]any `json:"readings"`
	Timestamp string         `json:"timestamp"`
}

// handleV1Ingest accepts one sensor reading.
// POST /api/v1/ingest
func (s *Server) handleV1Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SensorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor_id is required"})
		return
	}

	var ts *time.Time
	if req.Timestamp != "" {
		parsed, err := domain.ParseTimestamp(req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
			return
		}
		ts = &parsed
	}

	reading, err := s.svc.Ingest(c.Request.Context(), req.SensorID, req.Readings, ts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "ingested",
		"sensor_id": reading.SensorID,
		"timestamp": domain.FormatTimestamp(reading.Timestamp),
	})
}

// handleV1Status reports service health and aggregate counters.
// GET /api/v1/status
func (s *Server) handleV1Status(c *gin.Context) {
	st := s.svc.Status()

	var lastUpdate *string
	if st.LastUpdate != nil {
		formatted := domain.FormatTimestamp(*st.LastUpdate)
		lastUpdate = &formatted
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         st.Status,
		"uptime_seconds": st.UptimeSeconds,
		"active_sensors": st.ActiveSensors,
		"total_readings": st.TotalReadings,
		"last_update":    lastUpdate,
	})
}
