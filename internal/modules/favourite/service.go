package favourite

import (
	"context"
	"errors"

	"doulabook/internal/domain"
)

var ErrValidation = errors.New("validation error")

type FavouriteRepository interface {
	Toggle(ctx context.Context, motherID, doulaID int64) (bool, error)
	ListByMother(ctx context.Context, motherID int64) ([]domain.Favourite, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	favourites FavouriteRepository
	users      UserReader
}

func NewService(favourites FavouriteRepository, users UserReader) *Service {
	return &Service{favourites: favourites, users: users}
}

// Toggle flips the favourite flag for the mother/doula pair and reports
// the resulting state.
func (s *Service) Toggle(ctx context.Context, motherID, doulaID int64) (bool, error) {
	d, err := s.users.GetByID(ctx, doulaID)
	if err != nil || d.Role != domain.RoleDoula {
		return false, ErrValidation
	}
	return s.favourites.Toggle(ctx, motherID, doulaID)
}

type FavouriteDetails struct {
	FavouriteID int64   `json:"favourite_id"`
	DoulaID     int64   `json:"doula_id"`
	DoulaName   string  `json:"doula_name"`
	Location    string  `json:"location"`
	Verified    bool    `json:"verified"`
	Price       float64 `json:"price"`
	PhotoURL    string  `json:"photo_url,omitempty"`
}

// List returns the mother's favourites enriched with doula details, so
// the client does not have to resolve raw ids.
func (s *Service) List(ctx context.Context, motherID int64) ([]FavouriteDetails, error) {
	favs, err := s.favourites.ListByMother(ctx, motherID)
	if err != nil {
		return nil, err
	}

	out := make([]FavouriteDetails, 0, len(favs))
	for _, f := range favs {
		d, err := s.users.GetByID(ctx, f.DoulaID)
		if err != nil || d.Role != domain.RoleDoula {
			continue
		}
		out = append(out, FavouriteDetails{
			FavouriteID: f.ID,
			DoulaID:     d.ID,
			DoulaName:   d.Name,
			Location:    d.Location,
			Verified:    d.Verified,
			Price:       d.Price,
			PhotoURL:    d.PhotoURL,
		})
	}
	return out, nil
}
