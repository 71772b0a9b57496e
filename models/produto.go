package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Produto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Codigo    string          `gorm:"not null;uniqueIndex" json:"codigo"`
	Nome      string          `gorm:"not null;index" json:"nome"`
	Descricao string          `gorm:"type:text" json:"descricao"`
	Preco     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"preco"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Produto) TableName() string {
	return "produtos"
}

func (p *Produto) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
