package availability

import (
	"context"
	"regexp"

	"doulabook/internal/domain"
)

type AvailabilityRepository interface {
	ReplaceWeekly(ctx context.Context, doulaID int64, windows []domain.AvailabilityWindow) error
	GetWeekly(ctx context.Context, doulaID int64) ([]domain.AvailabilityWindow, error)
}

type Service struct {
	windows AvailabilityRepository
}

func NewService(windows AvailabilityRepository) *Service {
	return &Service{windows: windows}
}

// Zero-padded 24h "HH:MM". The format matters: validation and containment
// checks compare these strings lexicographically.
var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// SetWeekly replaces the doula's whole weekly schedule. Every active
// window must carry a valid HH:MM range with start strictly before end;
// inactive windows skip time validation. Submitting a day twice, or a day
// outside 0-6, is rejected.
func (s *Service) SetWeekly(ctx context.Context, doulaID int64, inputs []WindowInput) error {
	seen := [7]bool{}
	windows := make([]domain.AvailabilityWindow, 0, len(inputs))

	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return ErrValidation
		}
		if seen[in.DayOfWeek] {
			return &DayError{Day: in.DayOfWeek, Reason: "submitted more than once"}
		}
		seen[in.DayOfWeek] = true

		if in.Active {
			// "24:00" is allowed as an end time so a window can reach the
			// end of the day.
			if !hhmmRe.MatchString(in.StartTime) || !(hhmmRe.MatchString(in.EndTime) || in.EndTime == "24:00") {
				return &DayError{Day: in.DayOfWeek, Reason: "times must be HH:MM (24h)"}
			}
			if in.StartTime >= in.EndTime {
				return &DayError{Day: in.DayOfWeek, Reason: "start time must be before end time"}
			}
		}

		windows = append(windows, domain.AvailabilityWindow{
			DoulaID:   doulaID,
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Active:    in.Active,
		})
	}

	return s.windows.ReplaceWeekly(ctx, doulaID, windows)
}

func (s *Service) GetWeekly(ctx context.Context, doulaID int64) ([]domain.AvailabilityWindow, error) {
	return s.windows.GetWeekly(ctx, doulaID)
}
