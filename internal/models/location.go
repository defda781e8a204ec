package models

import "time"

// Coordinates is a latitude/longitude pair in decimal degrees, as returned by the ZIP geocoder.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GridMetadata identifies the NWS forecast office and grid cell covering a point,
// together with the endpoints that serve its forecasts.
type GridMetadata struct {
	Office           string `json:"office"`
	GridX            int    `json:"grid_x"`
	GridY            int    `json:"grid_y"`
	Forecast         string `json:"forecast"`
	ForecastHourly   string `json:"forecast_hourly"`
	ForecastGridData string `json:"forecast_grid_data"`
}

// ZipPoint is one resolved ZIP code: where it is and which forecast grid covers it.
type ZipPoint struct {
	ZipCode     string       `json:"zip_code"`
	Coordinates Coordinates  `json:"coordinates"`
	Grid        GridMetadata `json:"grid"`
	ResolvedAt  time.Time    `json:"resolved_at"`
}
