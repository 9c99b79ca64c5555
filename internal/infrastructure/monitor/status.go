package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Photos     bool      `json:"photos"`
	PhotoCount int       `json:"photo_count"`
	LastCheck  time.Time `json:"last_check"`
}
