package http

// registerV1Routes sets up the v1 API structure: ingest/status and sensor
// metadata at the top level, /realtime for current state, and
// history/distribution over the cleaned historical dataset.
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())

	v1.POST("/ingest", s.handleV1Ingest)
	v1.GET("/status", s.handleV1Status)

	v1.GET("/sensors", s.handleV1ListSensors)
	v1.GET("/sensors/:id", s.handleV1GetSensor)

	realtime := v1.Group("/realtime")
	{
		realtime.GET("/now", s.handleV1RealtimeNow)
	}

	v1.GET("/history/:sensor_id", s.handleV1History)
	v1.GET("/distribution/:year/:month", s.handleV1Distribution)

	v1.GET("/stats/cleaning", s.handleV1CleaningStats)
	v1.GET("/config/display", s.handleV1DisplayConfig)
}
