package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const CompraRealizada = "realizada"

// HistoricoCompra is an append-only purchase event of a recurrence.
type HistoricoCompra struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RecorrenciaID uuid.UUID       `gorm:"type:uuid;index;not null" json:"recorrencia_id"`
	Data          Date            `gorm:"not null" json:"data"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor"`
	Status        string          `gorm:"type:varchar(20);not null" json:"status"`
	Observacoes   string          `gorm:"type:text" json:"observacoes"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (HistoricoCompra) TableName() string {
	return "historico_compras"
}

func (h *HistoricoCompra) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}
