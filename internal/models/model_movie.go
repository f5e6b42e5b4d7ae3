package models

import (
	"time"

	"gorm.io/gorm"
)

// Movie is one catalog title. Quantity is the number of copies owned, not
// the number currently available; availability is derived from the rental
// ledger.
type Movie struct {
	ID       string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name     string `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	Genre    string `gorm:"column:genre;type:varchar(100);not null" json:"genre"`
	Director string `gorm:"column:director;type:varchar(100);not null" json:"director"`
	Quantity int    `gorm:"column:quantity;not null;default:1" json:"quantity"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Movie) TableName() string {
	return "movie"
}
