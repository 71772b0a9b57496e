// controllers/dashboard.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nmalls-recorrencia/models"
)

const proximasLimit = 5

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboardStats summarises clients and active recurrences for today.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	today := models.Today()

	var totalClientes int64
	if err := dc.DB.Model(&models.Cliente{}).Count(&totalClientes).Error; err != nil {
		internalError(c, err, "Erro ao carregar painel")
		return
	}

	ativas := func() *gorm.DB {
		return dc.DB.Model(&models.Recorrencia{}).Where("status = ?", models.StatusAtiva)
	}

	var recorrenciasAtivas int64
	if err := ativas().Count(&recorrenciasAtivas).Error; err != nil {
		internalError(c, err, "Erro ao carregar painel")
		return
	}

	var comprasHoje int64
	if err := ativas().Where("proxima_compra = ?", today).Count(&comprasHoje).Error; err != nil {
		internalError(c, err, "Erro ao carregar painel")
		return
	}

	var atrasadas int64
	if err := ativas().Where("proxima_compra < ?", today).Count(&atrasadas).Error; err != nil {
		internalError(c, err, "Erro ao carregar painel")
		return
	}

	proximas := []models.Recorrencia{}
	if err := dc.DB.
		Preload("Cliente").
		Where("status = ?", models.StatusAtiva).
		Order("proxima_compra asc").
		Limit(proximasLimit).
		Find(&proximas).Error; err != nil {
		internalError(c, err, "Erro ao carregar painel")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clientes":      totalClientes,
		"recorrencias_ativas": recorrenciasAtivas,
		"compras_hoje":        comprasHoje,
		"compras_atrasadas":   atrasadas,
		"proximas_compras":    proximas,
	})
}
