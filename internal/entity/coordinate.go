package entity

import "fmt"

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	DefaultLatitude  = 48.856600
	DefaultLongitude = 2.352200
)

type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (c Coordinate) Valid() bool {
	return c.Latitude >= MinLatitude && c.Latitude <= MaxLatitude &&
		c.Longitude >= MinLongitude && c.Longitude <= MaxLongitude
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}
