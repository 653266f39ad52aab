package models

import "time"

// RiskFactor is a single contributor to a risk score.
type RiskFactor struct {
	Label  string  `json:"label"`
	Impact float64 `json:"impact"`
}

// RiskAssessment is the persisted outcome of one scoring run for a
// vendor. Score is 0-100 where higher means lower risk.
type RiskAssessment struct {
	ID        string
	VendorID  string
	Score     int
	Level     string
	Reasoning string
	Factors   []RiskFactor
	CreatedAt time.Time
}
