// controllers/produtos.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

// ProdutoInput is the body of POST and PUT /api/produtos.
type ProdutoInput struct {
	Codigo    string           `json:"codigo"`
	Nome      string           `json:"nome"`
	Descricao string           `json:"descricao"`
	Preco     *decimal.Decimal `json:"preco"`
}

func (in *ProdutoInput) validate() string {
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Nome = strings.TrimSpace(in.Nome)
	if in.Codigo == "" || in.Nome == "" || in.Preco == nil || in.Preco.IsZero() {
		return "Código, nome e preço são obrigatórios"
	}
	if in.Preco.IsNegative() {
		return "Preço não pode ser negativo"
	}
	return ""
}

type ProdutoController struct {
	DB *gorm.DB
}

func NewProdutoController(db *gorm.DB) *ProdutoController {
	return &ProdutoController{DB: db}
}

func (pc *ProdutoController) List(c *gin.Context) {
	var produtos []models.Produto
	if err := pc.DB.Order("nome asc").Find(&produtos).Error; err != nil {
		internalError(c, err, "Erro ao listar produtos")
		return
	}

	c.JSON(http.StatusOK, produtos)
}

func (pc *ProdutoController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de produto inválido")
	if !ok {
		return
	}

	var produto models.Produto
	if err := pc.DB.First(&produto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Produto não encontrado")
		} else {
			internalError(c, err, "Erro ao buscar produto")
		}
		return
	}

	c.JSON(http.StatusOK, produto)
}

// GetByCodigo looks a product up by its EAN/internal code.
func (pc *ProdutoController) GetByCodigo(c *gin.Context) {
	var produto models.Produto
	if err := pc.DB.Where("codigo = ?", c.Param("codigo")).First(&produto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Produto não encontrado")
		} else {
			internalError(c, err, "Erro ao buscar produto por código")
		}
		return
	}

	c.JSON(http.StatusOK, produto)
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches the term case-insensitively against code, name and description.
func (pc *ProdutoController) Search(c *gin.Context) {
	termo := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(c.Param("termo")))) + "%"

	var produtos []models.Produto
	if err := pc.DB.
		Where(`LOWER(codigo) LIKE ? ESCAPE '\' OR LOWER(nome) LIKE ? ESCAPE '\' OR LOWER(descricao) LIKE ? ESCAPE '\'`, termo, termo, termo).
		Order("nome asc").
		Find(&produtos).Error; err != nil {
		internalError(c, err, "Erro ao buscar produtos")
		return
	}

	c.JSON(http.StatusOK, produtos)
}

func (pc *ProdutoController) Create(c *gin.Context) {
	var input ProdutoInput
	if !bindJSON(c, &input) {
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var existing models.Produto
	if err := pc.DB.Select("id").Where("codigo = ?", input.Codigo).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Código já cadastrado")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Erro ao criar produto")
		return
	}

	produto := models.Produto{
		Codigo:    input.Codigo,
		Nome:      input.Nome,
		Descricao: input.Descricao,
		Preco:     *input.Preco,
	}

	if err := pc.DB.Create(&produto).Error; err != nil {
		internalError(c, err, "Erro ao criar produto")
		return
	}

	c.JSON(http.StatusCreated, produto)
}

func (pc *ProdutoController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de produto inválido")
	if !ok {
		return
	}

	var input ProdutoInput
	if !bindJSON(c, &input) {
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var existing models.Produto
	if err := pc.DB.Select("id").Where("codigo = ? AND id <> ?", input.Codigo, id).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Código já cadastrado para outro produto")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Erro ao atualizar produto")
		return
	}

	var produto models.Produto
	if err := pc.DB.First(&produto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Produto não encontrado")
		} else {
			internalError(c, err, "Erro ao atualizar produto")
		}
		return
	}

	produto.Codigo = input.Codigo
	produto.Nome = input.Nome
	produto.Descricao = input.Descricao
	produto.Preco = *input.Preco

	if err := pc.DB.Save(&produto).Error; err != nil {
		internalError(c, err, "Erro ao atualizar produto")
		return
	}

	c.JSON(http.StatusOK, produto)
}

// Delete refuses to remove a product used by any recurrence line.
func (pc *ProdutoController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de produto inválido")
	if !ok {
		return
	}

	var count int64
	if err := pc.DB.Model(&models.RecorrenciaProduto{}).Where("produto_id = ?", id).Count(&count).Error; err != nil {
		internalError(c, err, "Erro ao excluir produto")
		return
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Produto possui recorrências associadas. Não é possível excluir.")
		return
	}

	result := pc.DB.Where("id = ?", id).Delete(&models.Produto{})
	if result.Error != nil {
		internalError(c, result.Error, "Erro ao excluir produto")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Produto não encontrado")
		return
	}

	c.Status(http.StatusNoContent)
}
