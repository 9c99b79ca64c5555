package domain

// Technician represents a maintenance worker affiliated with a home depot.
// Read-only to the scheduling engine.
type Technician struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Depot string `json:"depot"`
}
