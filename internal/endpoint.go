package internal

import "time"

// Endpoint describes one remote forecast resource and where its payload
// is persisted. Endpoints are defined once at startup and never mutated.
type Endpoint struct {
	ID          string
	URL         string
	File        string
	Description string
}

// Document is a validated forecast payload. Body holds the raw response
// bytes exactly as received; it is never re-serialized.
type Document struct {
	Endpoint   Endpoint
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

// FileInfo reports a persisted artifact's size and modification time.
type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// DefaultEndpoints returns the built-in forecast table in fetch order:
// today first, then tomorrow.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{
			ID:          "d0",
			URL:         "https://api.open-meteo.com/v1/forecast?latitude=40.4168&longitude=-3.7038&daily=temperature_2m_max,temperature_2m_min,precipitation_sum&timezone=auto&forecast_days=1",
			File:        "forecast_today.json",
			Description: "Forecast for today",
		},
		{
			ID:          "d1",
			URL:         "https://api.open-meteo.com/v1/forecast?latitude=40.4168&longitude=-3.7038&daily=temperature_2m_max,temperature_2m_min,precipitation_sum&timezone=auto&forecast_days=2",
			File:        "forecast_tomorrow.json",
			Description: "Forecast for tomorrow",
		},
	}
}
