package domain

import "strings"

// Maintenance interval tags recognized by the default calendar.
const (
	IntervalWeekly   = "Weekly"
	IntervalBiWeekly = "Bi-weekly"
	IntervalMonthly  = "Monthly"
)

// defaultIntervalDays is used for tags missing from the calendar. The
// mapping is fail-soft: bad data degrades to a monthly cadence instead
// of an error.
const defaultIntervalDays = 30

// IntervalCalendar maps a maintenance-interval tag to its cadence in
// whole days. It is injected into the engine so alternate catalogs can
// be tested without touching the scheduling logic.
type IntervalCalendar map[string]int

// DefaultIntervalCalendar returns the stock cadence table.
func DefaultIntervalCalendar() IntervalCalendar {
	return IntervalCalendar{
		IntervalWeekly:   7,
		IntervalBiWeekly: 14,
		IntervalMonthly:  30,
	}
}

// Days returns the cadence for a tag, defaulting for unknown tags.
func (c IntervalCalendar) Days(tag string) int {
	if days, ok := c[tag]; ok && days > 0 {
		return days
	}
	return defaultIntervalDays
}

// DefaultPartsCatalog returns the fixed list of parts selectable on task
// completion.
func DefaultPartsCatalog() []string {
	return []string{
		"Oil filter",
		"Brake pads",
		"Tires",
		"Air filter",
		"Spark plugs",
		"Coolant",
		"Engine oil",
	}
}

// allowedPhotoExtensions is the accepted photo file extension set. The
// check is purely name-based; no content inspection happens.
var allowedPhotoExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// AllowedPhotoFile reports whether a filename carries an accepted photo
// extension.
func AllowedPhotoFile(filename string) bool {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	return allowedPhotoExtensions[strings.ToLower(filename[idx+1:])]
}

// PhotoExtension returns the lower-cased extension of an accepted photo
// filename, or an empty string when the file is not acceptable.
func PhotoExtension(filename string) string {
	if !AllowedPhotoFile(filename) {
		return ""
	}
	idx := strings.LastIndexByte(filename, '.')
	return strings.ToLower(filename[idx+1:])
}
