package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusAtiva     = "ativa"
	StatusPausada   = "pausada"
	StatusCancelada = "cancelada"
)

type Recorrencia struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClienteID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"cliente_id"`
	IntervaloDias int             `gorm:"not null" json:"intervalo_dias"`
	UltimaCompra  Date            `gorm:"not null" json:"ultima_compra"`
	ProximaCompra Date            `gorm:"not null;index" json:"proxima_compra"`
	Status        string          `gorm:"type:varchar(20);not null;default:'ativa'" json:"status"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor_total"`
	Observacoes   string          `gorm:"type:text" json:"observacoes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Cliente  *ClienteResumo       `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Produtos []RecorrenciaProduto `gorm:"foreignKey:RecorrenciaID" json:"produtos,omitempty"`
}

func (Recorrencia) TableName() string {
	return "recorrencias"
}

func (r *Recorrencia) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

type RecorrenciaProduto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RecorrenciaID uuid.UUID       `gorm:"type:uuid;index;not null" json:"recorrencia_id"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"produto_id"`
	Quantidade    int             `gorm:"not null" json:"quantidade"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"preco_unitario"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Produto *Produto `gorm:"foreignKey:ProdutoID" json:"produto,omitempty"`
}

func (RecorrenciaProduto) TableName() string {
	return "recorrencia_produtos"
}

func (rp *RecorrenciaProduto) BeforeCreate(tx *gorm.DB) (err error) {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	return
}

// ProximaCompra is the next due day: the last purchase plus the interval.
func ProximaCompra(ultimaCompra Date, intervaloDias int) Date {
	return ultimaCompra.AddDays(intervaloDias)
}

// NovaLinha builds a product line with its subtotal filled in.
func NovaLinha(produtoID uuid.UUID, quantidade int, precoUnitario decimal.Decimal) RecorrenciaProduto {
	return RecorrenciaProduto{
		ProdutoID:     produtoID,
		Quantidade:    quantidade,
		PrecoUnitario: precoUnitario,
		Subtotal:      precoUnitario.Mul(decimal.NewFromInt(int64(quantidade))),
	}
}

// ValorTotal sums the subtotals of the given lines.
func ValorTotal(linhas []RecorrenciaProduto) decimal.Decimal {
	total := decimal.Zero
	for _, l := range linhas {
		total = total.Add(l.Subtotal)
	}
	return total
}
