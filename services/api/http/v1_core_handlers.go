package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleV1ListSensors returns all registered sensors.
// GET /api/v1/sensors
func (s *Server) handleV1ListSensors(c *gin.Context) {
	sensors := s.registry.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"data": sensors,
		"meta": gin.H{
			"count": len(sensors),
		},
	})
}

// handleV1GetSensor returns details for a specific sensor.
// GET /api/v1/sensors/:id
func (s *Server) handleV1GetSensor(c *gin.Context) {
	sensorID := c.Param("id")
	if sensorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor id is required"})
		return
	}

	sensor, ok := s.registry.Get(sensorID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sensor,
	})
}

// handleV1CleaningStats returns the startup historical-cleaning statistics.
// GET /api/v1/stats/cleaning
func (s *Server) handleV1CleaningStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.stats})
}

// handleV1DisplayConfig returns map-rendering defaults for consumers.
// GET /api/v1/config/display
func (s *Server) handleV1DisplayConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"default_zoom":    s.cfg.Display.DefaultZoom,
			"map_style":       s.cfg.Display.MapStyle,
			"category_colors": s.cfg.Display.CategoryColors,
		},
	})
}
