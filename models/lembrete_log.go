package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LembreteLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecorrenciaID uuid.UUID `gorm:"type:uuid;index;not null" json:"recorrencia_id"`
	ClienteID     uuid.UUID `gorm:"type:uuid;index;not null" json:"cliente_id"`
	ProximaCompra Date      `gorm:"index" json:"proxima_compra"`
	Canal         string    `gorm:"type:varchar(20)" json:"canal"`  // whatsapp, sms
	Mensagem      string    `gorm:"type:text" json:"mensagem"`
	Status        string    `gorm:"type:varchar(20)" json:"status"` // enviado, falhou
	Erro          string    `gorm:"type:text" json:"erro,omitempty"`
	EnviadoEm     time.Time `json:"enviado_em"`
	CreatedAt     time.Time `json:"created_at"`
}

func (LembreteLog) TableName() string {
	return "lembrete_logs"
}

func (l *LembreteLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// All lists every model handled by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&Usuario{},
		&Cliente{},
		&Produto{},
		&Recorrencia{},
		&RecorrenciaProduto{},
		&HistoricoCompra{},
		&LembreteLog{},
	}
}
