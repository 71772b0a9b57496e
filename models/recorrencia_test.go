package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProximaCompra(t *testing.T) {
	tests := []struct {
		name      string
		ultima    Date
		intervalo int
		want      string
	}{
		{name: "same month", ultima: NewDate(2024, time.March, 1), intervalo: 10, want: "2024-03-11"},
		{name: "crosses month", ultima: NewDate(2024, time.January, 25), intervalo: 30, want: "2024-02-24"},
		{name: "leap day", ultima: NewDate(2024, time.February, 28), intervalo: 1, want: "2024-02-29"},
		{name: "crosses year", ultima: NewDate(2023, time.December, 20), intervalo: 15, want: "2024-01-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProximaCompra(tt.ultima, tt.intervalo).String())
		})
	}
}

func TestValorTotal(t *testing.T) {
	linhas := []RecorrenciaProduto{
		NovaLinha(uuid.New(), 2, decimal.RequireFromString("19.90")),
		NovaLinha(uuid.New(), 3, decimal.RequireFromString("5.35")),
	}

	assert.Equal(t, "39.8", linhas[0].Subtotal.String())
	assert.Equal(t, "16.05", linhas[1].Subtotal.String())
	assert.True(t, decimal.RequireFromString("55.85").Equal(ValorTotal(linhas)))
	assert.True(t, ValorTotal(nil).IsZero())
}
