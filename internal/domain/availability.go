package domain

import "time"

// AvailabilityWindow is one recurring weekly window for a doula.
// DayOfWeek is 0=Monday .. 6=Sunday. Times are zero-padded 24h "HH:MM"
// strings; that format sorts correctly lexicographically, which the
// validation and containment checks rely on.
type AvailabilityWindow struct {
	ID        int64     `json:"id"`
	DoulaID   int64     `json:"doula_id" gorm:"index:idx_doula_day,unique"`
	DayOfWeek int       `json:"day_of_week" gorm:"index:idx_doula_day,unique"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeekdayIndex maps Go's Sunday-based weekday to the Monday-based index
// used by availability rows.
func WeekdayIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayName returns a human-readable name for a 0=Monday day index.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return "unknown"
	}
	return dayNames[day]
}
