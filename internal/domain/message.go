package domain

import "time"

// Message is one private message in a mother/doula conversation.
// Read flags are per side: the sender's side is marked read on send,
// the receiver's side stays unread until mark-read.
type Message struct {
	ID           int64     `json:"id"`
	MotherID     int64     `json:"mother_id" gorm:"index"`
	DoulaID      int64     `json:"doula_id" gorm:"index"`
	SenderRole   UserRole  `json:"sender_role"`
	Text         string    `json:"text" gorm:"type:text"`
	ReadByMother bool      `json:"read_by_mother"`
	ReadByDoula  bool      `json:"read_by_doula"`
	CreatedAt    time.Time `json:"created_at"`
}
