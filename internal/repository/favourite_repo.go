package repository

import (
	"context"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type FavouriteRepository struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

// Toggle adds the doula to the mother's favourites, or removes it when
// already present. Reports whether the pair is favourited afterwards.
func (r *FavouriteRepository) Toggle(ctx context.Context, motherID, doulaID int64) (bool, error) {
	var favourited bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Favourite
		res := tx.Where("mother_id = ? AND doula_id = ?", motherID, doulaID).
			Limit(1).
			Find(&existing)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			favourited = false
			return tx.Delete(&existing).Error
		}

		favourited = true
		return tx.Create(&domain.Favourite{MotherID: motherID, DoulaID: doulaID}).Error
	})

	return favourited, err
}

func (r *FavouriteRepository) ListByMother(ctx context.Context, motherID int64) ([]domain.Favourite, error) {
	var favs []domain.Favourite
	tx := r.db.WithContext(ctx).
		Where("mother_id = ?", motherID).
		Order("created_at DESC").
		Find(&favs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return favs, nil
}
