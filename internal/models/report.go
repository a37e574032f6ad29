package models

import "time"

// Report status values.
const (
	StatusNormal   = "normal"
	StatusCritical = "critical"
)

// ErrorReport is a point-in-time snapshot of a handler's error tracking.
type ErrorReport struct {
	Timestamp       time.Time `json:"timestamp"`
	ErrorCount      int       `json:"errorCount"`
	MaxErrors       int       `json:"maxErrors"`
	Status          string    `json:"status"`
	Recommendations []string  `json:"recommendations"`
}
