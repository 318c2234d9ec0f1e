package server

import (
	"sync/atomic"
	"time"
)

// StatsTracker keeps process-wide counters for the /api/stats endpoint.
type StatsTracker struct {
	startTime         time.Time
	palettesGenerated atomic.Int64
	shadeSets         atomic.Int64
	copies            atomic.Int64
	hexRejected       atomic.Int64
}

// StatsResponse is the JSON response for /api/stats
type StatsResponse struct {
	UptimeSeconds     int64 `json:"uptimeSeconds"`
	ActiveSessions    int   `json:"activeSessions"`
	PalettesGenerated int64 `json:"palettesGenerated"`
	ShadeSets         int64 `json:"shadeSets"`
	Copies            int64 `json:"copies"`
	HexRejected       int64 `json:"hexRejected"`
}

// NewStatsTracker starts the uptime clock.
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{startTime: time.Now()}
}

// RecordPalette records a palette regeneration
func (s *StatsTracker) RecordPalette() {
	s.palettesGenerated.Add(1)
	MetricPalettesGenerated.Inc()
}

// RecordShades records a shade set generation
func (s *StatsTracker) RecordShades(index string) {
	s.shadeSets.Add(1)
	MetricShadesGenerated.WithLabelValues(index).Inc()
}

// RecordCopy records a served copy payload
func (s *StatsTracker) RecordCopy(target, format string) {
	s.copies.Add(1)
	MetricCopies.WithLabelValues(target, format).Inc()
}

// RecordHexRejected records an ignored hex input
func (s *StatsTracker) RecordHexRejected() {
	s.hexRejected.Add(1)
	MetricHexRejected.Inc()
}

// Snapshot builds the API response.
func (s *StatsTracker) Snapshot(activeSessions int) StatsResponse {
	return StatsResponse{
		UptimeSeconds:     int64(time.Since(s.startTime).Seconds()),
		ActiveSessions:    activeSessions,
		PalettesGenerated: s.palettesGenerated.Load(),
		ShadeSets:         s.shadeSets.Load(),
		Copies:            s.copies.Load(),
		HexRejected:       s.hexRejected.Load(),
	}
}
