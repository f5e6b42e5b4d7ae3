package models

import (
	"time"

	"gorm.io/gorm"
)

// Rent is the current state of one rental transaction. History lives in
// RentHistory; a Rent row alone does not encode how it got here.
type Rent struct {
	ID         string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	MovieID    string    `gorm:"column:movie_id;type:uuid;not null;index" json:"movie_id"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ReturnDate time.Time `gorm:"column:return_date;not null" json:"return_date"`
	Returned   int       `gorm:"column:returned;not null;default:0" json:"returned"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Rent) TableName() string {
	return "rent"
}

// Active reports whether the rental still counts against stock and
// per-user caps: not soft-deleted and not returned.
func (r *Rent) Active() bool {
	return r != nil && !r.DeletedAt.Valid && r.Returned == 0
}
