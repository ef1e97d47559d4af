package doula

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"doulabook/internal/domain"
	"doulabook/internal/pkg/validator"
	"doulabook/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("doula not found")
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SearchDoulas(ctx context.Context, f repository.DoulaFilter) ([]domain.User, error)
}

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) Search(ctx context.Context, f repository.DoulaFilter) ([]domain.User, error) {
	return s.users.SearchDoulas(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if u.Role != domain.RoleDoula {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile applies a partial profile update for the doula herself.
// File contents live in external object storage; only opaque URLs are
// stored here.
func (s *Service) UpdateProfile(ctx context.Context, doulaID int64, req UpdateProfileRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrValidation
	}

	u, err := s.GetByID(ctx, doulaID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Price != nil {
		u.Price = *req.Price
	}
	if req.PriceBundle != nil {
		u.PriceBundle = req.PriceBundle
	}
	if req.PriceCaption != nil {
		u.PriceCaption = *req.PriceCaption
	}
	if req.BundleCaption != nil {
		u.BundleCaption = *req.BundleCaption
	}
	if req.Qualifications != nil {
		u.Qualifications = *req.Qualifications
	}
	if req.Services != nil {
		u.Services = *req.Services
	}
	if req.YearsExperience != nil {
		u.YearsExperience = req.YearsExperience
	}
	if req.PhotoURL != nil {
		u.PhotoURL = *req.PhotoURL
	}
	if req.CertificateURL != nil {
		u.CertificateURL = *req.CertificateURL
	}
	if req.IntroVideoURL != nil {
		u.IntroVideoURL = *req.IntroVideoURL
	}
	if req.Documents != nil {
		raw, err := json.Marshal(req.Documents)
		if err != nil {
			return nil, ErrValidation
		}
		u.Documents = raw
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
