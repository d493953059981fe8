package entity

import "time"

type DetectionResult struct {
	Message   string     `json:"message"`
	Buildings int        `json:"buildings"`
	Illegal   int        `json:"illegal"`
	Simulated bool       `json:"simulated"`
	Backend   string     `json:"backend"`
	Point     Coordinate `json:"point"`
}

type AnalysisRecord struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	InputMode string    `db:"input_mode" json:"input_mode"`
	Backend   string    `db:"backend" json:"backend"`
	Message   string    `db:"message" json:"message"`
	Simulated bool      `db:"simulated" json:"simulated"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
