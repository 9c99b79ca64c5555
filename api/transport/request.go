package transport

// PartSelection is one chosen part with its raw quantity string.
type PartSelection struct {
	Name string `json:"name"`
	Qty  string `json:"qty"`
}

// CompleteTaskRequest mirrors the completion form: selected parts in
// submission order, an optional signature and status, and the uploaded
// photo files handled separately by the multipart parser.
type CompleteTaskRequest struct {
	Signature string          `json:"signature"`
	Status    string          `json:"status"`
	Parts     []PartSelection `json:"parts"`
}

// TaskListQuery captures the supported task listing filters.
type TaskListQuery struct {
	Status     string `json:"status"`
	Depot      string `json:"depot"`
	Unassigned bool   `json:"unassigned"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}
