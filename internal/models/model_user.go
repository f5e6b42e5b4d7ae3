package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a rental customer. Document is the 11-digit national ID; both it
// and Email are unique across non-deleted rows. Validation (checksum, age)
// happens at the transport boundary before a User reaches storage.
type User struct {
	ID       string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email    string    `gorm:"column:email;type:varchar(100);not null;uniqueIndex" json:"email"`
	Document string    `gorm:"column:document;type:varchar(11);not null;uniqueIndex" json:"document"`
	Gender   string    `gorm:"column:gender;type:varchar(45);not null" json:"gender"`
	Birthday time.Time `gorm:"column:birthday;not null" json:"birthday"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "user"
}
