package domain

import "testing"

func TestIntervalCalendarDays(t *testing.T) {
	calendar := DefaultIntervalCalendar()

	tests := []struct {
		tag  string
		want int
	}{
		{IntervalWeekly, 7},
		{IntervalBiWeekly, 14},
		{IntervalMonthly, 30},
		{"Quarterly", 30},
		{"", 30},
		{"weekly", 30}, // tags are case-sensitive
	}

	for _, tt := range tests {
		if got := calendar.Days(tt.tag); got != tt.want {
			t.Errorf("Days(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestIntervalCalendarNonPositiveEntryFallsBack(t *testing.T) {
	calendar := IntervalCalendar{"Broken": 0, "Negative": -5}
	if got := calendar.Days("Broken"); got != 30 {
		t.Errorf("Days(Broken) = %d, want default 30", got)
	}
	if got := calendar.Days("Negative"); got != 30 {
		t.Errorf("Days(Negative) = %d, want default 30", got)
	}
}

func TestAllowedPhotoFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.gif", true},
		{"photo.webp", true},
		{"PHOTO.PNG", true},
		{"archive.tar.gz", false},
		{"report.pdf", false},
		{"noextension", false},
		{"trailingdot.", false},
		{"", false},
		{".png", true},
	}

	for _, tt := range tests {
		if got := AllowedPhotoFile(tt.filename); got != tt.want {
			t.Errorf("AllowedPhotoFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestPhotoExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"shot.JPG", "jpg"},
		{"done.webp", "webp"},
		{"report.pdf", ""},
		{"noextension", ""},
	}

	for _, tt := range tests {
		if got := PhotoExtension(tt.filename); got != tt.want {
			t.Errorf("PhotoExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
