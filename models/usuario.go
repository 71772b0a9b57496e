package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Usuario struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Senha     string     `gorm:"not null" json:"-"`
	Nome      string     `json:"nome"`
	Role      string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// Senha must already be hashed when the row is created.
func (u *Usuario) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
