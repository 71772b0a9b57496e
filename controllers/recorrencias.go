// controllers/recorrencias.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

// LinhaInput is one product line of a recurrence. PrecoUnitario defaults
// to the product's current price when omitted.
type LinhaInput struct {
	ProdutoID     uuid.UUID        `json:"produto_id"`
	Quantidade    int              `json:"quantidade"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario"`
}

type RecorrenciaInput struct {
	ClienteID     uuid.UUID    `json:"cliente_id"`
	IntervaloDias int          `json:"intervalo_dias"`
	UltimaCompra  models.Date  `json:"ultima_compra"`
	ProximaCompra models.Date  `json:"proxima_compra"`
	Status        string       `json:"status"`
	Observacoes   string       `json:"observacoes"`
	Produtos      []LinhaInput `json:"produtos"`
}

type RegistrarCompraInput struct {
	DataCompra  models.Date      `json:"data_compra"`
	Valor       *decimal.Decimal `json:"valor"`
	Observacoes string           `json:"observacoes"`
}

// errValidation carries a message meant for the client as a 400.
type errValidation struct{ msg string }

func (e errValidation) Error() string { return e.msg }

func validStatus(s string) bool {
	switch s {
	case models.StatusAtiva, models.StatusPausada, models.StatusCancelada:
		return true
	}
	return false
}

type RecorrenciaController struct {
	DB *gorm.DB
}

func NewRecorrenciaController(db *gorm.DB) *RecorrenciaController {
	return &RecorrenciaController{DB: db}
}

// List returns recurrences ordered by next due date, optionally filtered
// by ?cliente= and ?status=.
func (rc *RecorrenciaController) List(c *gin.Context) {
	query := rc.DB.Preload("Cliente").Order("proxima_compra asc")

	if clienteParam := c.Query("cliente"); clienteParam != "" {
		clienteID, err := uuid.Parse(clienteParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "ID de cliente inválido")
			return
		}
		query = query.Where("cliente_id = ?", clienteID)
	}
	if status := c.Query("status"); status != "" {
		if !validStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Status inválido")
			return
		}
		query = query.Where("status = ?", status)
	}

	var recorrencias []models.Recorrencia
	if err := query.Find(&recorrencias).Error; err != nil {
		internalError(c, err, "Erro ao listar recorrências")
		return
	}

	c.JSON(http.StatusOK, recorrencias)
}

func (rc *RecorrenciaController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de recorrência inválido")
	if !ok {
		return
	}

	recorrencia, err := rc.load(rc.DB, id)
	if err != nil {
		rc.respondLoadError(c, err, "Erro ao buscar recorrência")
		return
	}

	c.JSON(http.StatusOK, recorrencia)
}

func (rc *RecorrenciaController) ListByCliente(c *gin.Context) {
	clienteID, ok := parseIDParam(c, "clienteId", "ID de cliente inválido")
	if !ok {
		return
	}

	var recorrencias []models.Recorrencia
	if err := rc.DB.
		Preload("Produtos.Produto").
		Where("cliente_id = ?", clienteID).
		Order("proxima_compra asc").
		Find(&recorrencias).Error; err != nil {
		internalError(c, err, "Erro ao buscar recorrências do cliente")
		return
	}

	c.JSON(http.StatusOK, recorrencias)
}

// Create stores the recurrence, its product lines and the first history
// entry in one transaction.
func (rc *RecorrenciaController) Create(c *gin.Context) {
	var input RecorrenciaInput
	if !bindJSON(c, &input) {
		return
	}
	if input.ClienteID == uuid.Nil || input.IntervaloDias <= 0 || input.UltimaCompra.IsZero() || len(input.Produtos) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Cliente, intervalo de dias, data da última compra e produtos são obrigatórios")
		return
	}
	if input.Status == "" {
		input.Status = models.StatusAtiva
	}
	if !validStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Status inválido")
		return
	}

	var recorrencia models.Recorrencia
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureCliente(tx, input.ClienteID); err != nil {
			return err
		}
		linhas, err := buildLinhas(tx, input.Produtos)
		if err != nil {
			return err
		}

		proxima := input.ProximaCompra
		if proxima.IsZero() {
			proxima = models.ProximaCompra(input.UltimaCompra, input.IntervaloDias)
		}

		recorrencia = models.Recorrencia{
			ClienteID:     input.ClienteID,
			IntervaloDias: input.IntervaloDias,
			UltimaCompra:  input.UltimaCompra,
			ProximaCompra: proxima,
			Status:        input.Status,
			ValorTotal:    models.ValorTotal(linhas),
			Observacoes:   input.Observacoes,
		}
		if err := tx.Omit(clause.Associations).Create(&recorrencia).Error; err != nil {
			return err
		}

		for i := range linhas {
			linhas[i].RecorrenciaID = recorrencia.ID
		}
		if err := tx.Omit(clause.Associations).Create(&linhas).Error; err != nil {
			return err
		}

		historico := models.HistoricoCompra{
			RecorrenciaID: recorrencia.ID,
			Data:          input.UltimaCompra,
			Valor:         recorrencia.ValorTotal,
			Status:        models.CompraRealizada,
			Observacoes:   "Primeira compra registrada",
		}
		return tx.Create(&historico).Error
	})
	if err != nil {
		respondTxError(c, err, "Erro ao criar recorrência")
		return
	}

	created, err := rc.load(rc.DB, recorrencia.ID)
	if err != nil {
		internalError(c, err, "Erro ao criar recorrência")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update replaces the product lines only when the body carries them;
// otherwise the stored lines and total are kept.
func (rc *RecorrenciaController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de recorrência inválido")
	if !ok {
		return
	}

	var input RecorrenciaInput
	if !bindJSON(c, &input) {
		return
	}
	if input.ClienteID == uuid.Nil || input.IntervaloDias <= 0 || input.UltimaCompra.IsZero() {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Cliente, intervalo de dias e data da última compra são obrigatórios")
		return
	}
	if input.Status == "" {
		input.Status = models.StatusAtiva
	}
	if !validStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Status inválido")
		return
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		var recorrencia models.Recorrencia
		if err := tx.First(&recorrencia, "id = ?", id).Error; err != nil {
			return err
		}
		if err := ensureCliente(tx, input.ClienteID); err != nil {
			return err
		}

		recorrencia.ClienteID = input.ClienteID
		recorrencia.IntervaloDias = input.IntervaloDias
		recorrencia.UltimaCompra = input.UltimaCompra
		recorrencia.ProximaCompra = input.ProximaCompra
		if recorrencia.ProximaCompra.IsZero() {
			recorrencia.ProximaCompra = models.ProximaCompra(input.UltimaCompra, input.IntervaloDias)
		}
		recorrencia.Status = input.Status
		recorrencia.Observacoes = input.Observacoes

		if len(input.Produtos) > 0 {
			linhas, err := buildLinhas(tx, input.Produtos)
			if err != nil {
				return err
			}
			if err := tx.Where("recorrencia_id = ?", id).Delete(&models.RecorrenciaProduto{}).Error; err != nil {
				return err
			}
			for i := range linhas {
				linhas[i].RecorrenciaID = id
			}
			if err := tx.Omit(clause.Associations).Create(&linhas).Error; err != nil {
				return err
			}
			recorrencia.ValorTotal = models.ValorTotal(linhas)
		}

		return tx.Omit(clause.Associations).Save(&recorrencia).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Recorrência não encontrada")
			return
		}
		respondTxError(c, err, "Erro ao atualizar recorrência")
		return
	}

	updated, err := rc.load(rc.DB, id)
	if err != nil {
		internalError(c, err, "Erro ao atualizar recorrência")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RegistrarCompra records a purchase: it moves the last and next purchase
// dates and appends a history entry worth the given value, or the
// recurrence total when no value is sent.
func (rc *RecorrenciaController) RegistrarCompra(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de recorrência inválido")
	if !ok {
		return
	}

	var input RegistrarCompraInput
	if !bindJSON(c, &input) {
		return
	}
	if input.DataCompra.IsZero() {
		utils.RespondWithError(c, http.StatusBadRequest, "Data da compra é obrigatória")
		return
	}
	if input.Valor != nil && input.Valor.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Valor não pode ser negativo")
		return
	}

	var compra models.HistoricoCompra
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		var recorrencia models.Recorrencia
		if err := tx.First(&recorrencia, "id = ?", id).Error; err != nil {
			return err
		}

		proxima := models.ProximaCompra(input.DataCompra, recorrencia.IntervaloDias)
		if err := tx.Model(&models.Recorrencia{}).Where("id = ?", id).Updates(map[string]interface{}{
			"ultima_compra":  input.DataCompra,
			"proxima_compra": proxima,
		}).Error; err != nil {
			return err
		}

		valor := recorrencia.ValorTotal
		if input.Valor != nil {
			valor = *input.Valor
		}
		compra = models.HistoricoCompra{
			RecorrenciaID: id,
			Data:          input.DataCompra,
			Valor:         valor,
			Status:        models.CompraRealizada,
			Observacoes:   input.Observacoes,
		}
		return tx.Create(&compra).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Recorrência não encontrada")
			return
		}
		internalError(c, err, "Erro ao registrar compra")
		return
	}

	recorrencia, err := rc.load(rc.DB, id)
	if err != nil {
		internalError(c, err, "Erro ao registrar compra")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recorrencia": recorrencia,
		"compra":      compra,
	})
}

// Delete removes the recurrence together with its lines, history and
// reminder log.
func (rc *RecorrenciaController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de recorrência inválido")
	if !ok {
		return
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.RecorrenciaProduto{},
			&models.HistoricoCompra{},
			&models.LembreteLog{},
		} {
			if err := tx.Where("recorrencia_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.Recorrencia{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Recorrência não encontrada")
			return
		}
		internalError(c, err, "Erro ao excluir recorrência")
		return
	}

	c.Status(http.StatusNoContent)
}

// Historico lists the purchase history, newest first.
func (rc *RecorrenciaController) Historico(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de recorrência inválido")
	if !ok {
		return
	}

	var historico []models.HistoricoCompra
	if err := rc.DB.
		Where("recorrencia_id = ?", id).
		Order("data desc").
		Order("created_at desc").
		Find(&historico).Error; err != nil {
		internalError(c, err, "Erro ao buscar histórico")
		return
	}

	c.JSON(http.StatusOK, historico)
}

func (rc *RecorrenciaController) load(db *gorm.DB, id uuid.UUID) (*models.Recorrencia, error) {
	var recorrencia models.Recorrencia
	err := db.
		Preload("Cliente").
		Preload("Produtos.Produto").
		First(&recorrencia, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recorrencia, nil
}

func (rc *RecorrenciaController) respondLoadError(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, "Recorrência não encontrada")
		return
	}
	internalError(c, err, msg)
}

func ensureCliente(tx *gorm.DB, clienteID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Cliente{}).Where("id = ?", clienteID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errValidation{"Cliente não encontrado"}
	}
	return nil
}

// buildLinhas resolves every product and computes the line subtotals.
func buildLinhas(tx *gorm.DB, inputs []LinhaInput) ([]models.RecorrenciaProduto, error) {
	linhas := make([]models.RecorrenciaProduto, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantidade <= 0 {
			return nil, errValidation{"Quantidade deve ser maior que zero"}
		}

		var produto models.Produto
		if err := tx.First(&produto, "id = ?", in.ProdutoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errValidation{fmt.Sprintf("Produto não encontrado: %s", in.ProdutoID)}
			}
			return nil, err
		}

		preco := produto.Preco
		if in.PrecoUnitario != nil {
			if in.PrecoUnitario.IsNegative() {
				return nil, errValidation{"Preço não pode ser negativo"}
			}
			preco = *in.PrecoUnitario
		}
		linhas = append(linhas, models.NovaLinha(in.ProdutoID, in.Quantidade, preco))
	}
	return linhas, nil
}

func respondTxError(c *gin.Context, err error, msg string) {
	var verr errValidation
	if errors.As(err, &verr) {
		utils.RespondWithError(c, http.StatusBadRequest, verr.msg)
		return
	}
	internalError(c, err, msg)
}
