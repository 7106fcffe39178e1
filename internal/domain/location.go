package domain

import "time"

// Location is a monitored geographic area (usually a city)
type Location struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Population *int64    `json:"population,omitempty"`
	Area       *float64  `json:"area,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Coordinate bounds accepted for new locations
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)
