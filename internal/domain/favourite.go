package domain

import "time"

type Favourite struct {
	ID        int64     `json:"id"`
	MotherID  int64     `json:"mother_id" gorm:"index:idx_mother_doula,unique"`
	DoulaID   int64     `json:"doula_id" gorm:"index:idx_mother_doula,unique"`
	CreatedAt time.Time `json:"created_at"`
}
