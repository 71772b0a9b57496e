package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cliente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nome        string    `gorm:"not null;index" json:"nome"`
	CPF         string    `gorm:"column:cpf;size:11;not null;uniqueIndex" json:"cpf"`
	Telefone    string    `json:"telefone"`
	Email       string    `json:"email"`
	Observacoes string    `gorm:"type:text" json:"observacoes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Cliente) TableName() string {
	return "clientes"
}

func (c *Cliente) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// ClienteResumo is the subset of a client embedded in recurrence responses.
type ClienteResumo struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nome     string    `json:"nome"`
	CPF      string    `gorm:"column:cpf" json:"cpf"`
	Telefone string    `json:"telefone"`
}

func (ClienteResumo) TableName() string {
	return "clientes"
}
