package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).First(&u, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var u domain.User
	res := r.db.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&u)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// DoulaFilter holds the catalog search parameters. Zero values mean
// "no filter".
type DoulaFilter struct {
	Query    string
	Location string
	MinPrice *float64
	MaxPrice *float64
	Verified bool
	SortBy   string // price | name | location
}

// SearchDoulas returns doulas matching the filter. Query searches name,
// location, qualifications and services case-insensitively.
func (r *UserRepository) SearchDoulas(ctx context.Context, f DoulaFilter) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Where("role = ?", string(domain.RoleDoula))

	if f.Verified {
		q = q.Where("verified = ?", true)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(qualifications) LIKE ? OR LOWER(services) LIKE ?",
			like, like, like, like,
		)
	}

	switch f.SortBy {
	case "price":
		q = q.Order("price")
	case "name":
		q = q.Order("name")
	case "location":
		q = q.Order("location")
	default:
		q = q.Order("id")
	}

	var doulas []domain.User
	if err := q.Find(&doulas).Error; err != nil {
		return nil, err
	}
	return doulas, nil
}
