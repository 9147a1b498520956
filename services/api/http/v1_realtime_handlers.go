package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aetherhq/aether/services/api/cleaning"
	"github.com/aetherhq/aether/services/api/domain"
)

// sensorSnapshot is one map point: sensor position plus its last-known
// pm2.5 value and health category.
type sensorSnapshot struct {
	SensorID   string            `json:"sensor_id"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Province   string            `json:"province"`
	Region     string            `json:"region"`
	PM25       *float64          `json:"pm25"`
	Category   cleaning.Category `json:"category"`
	LastUpdate *string           `json:"last_update"`
}

// handleV1RealtimeNow returns the current per-sensor snapshot used by map
// consumers.
// GET /api/v1/realtime/now
func (s *Server) handleV1RealtimeNow(c *gin.Context) {
	sensors := s.registry.Snapshot()

	snapshots := make([]sensorSnapshot, 0, len(sensors))
	for i := range sensors {
		sensor := &sensors[i]

		var pm25 *float64
		if sensor.LastReading != nil {
			if v, ok := sensor.LastReading["pm25"]; ok {
				value := v
				pm25 = &value
			}
		}
		var lastUpdate *string
		if sensor.LastUpdate != nil {
			formatted := domain.FormatTimestamp(*sensor.LastUpdate)
			lastUpdate = &formatted
		}

		region := "Unknown"
		if v, ok := sensor.Metadata["region"].(string); ok && v != "" {
			region = v
		}

		snapshots = append(snapshots, sensorSnapshot{
			SensorID:   sensor.ID,
			Lat:        sensor.Latitude,
			Lon:        sensor.Longitude,
			Province:   sensor.Province(),
			Region:     region,
			PM25:       pm25,
			Category:   cleaning.Categorize(pm25, s.pm25),
			LastUpdate: lastUpdate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshots,
		"meta": gin.H{
			"sensors_count": len(snapshots),
			"generated_at":  time.Now().UTC().Format(time.RFC3339),
		},
	})
}
