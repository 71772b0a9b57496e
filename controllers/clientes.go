// controllers/clientes.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

// ClienteInput is the body of POST and PUT /api/clientes.
type ClienteInput struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Telefone    string `json:"telefone"`
	Email       string `json:"email"`
	Observacoes string `json:"observacoes"`
}

// validate normalizes the CPF in place and returns the first problem found.
func (in *ClienteInput) validate() string {
	in.Nome = strings.TrimSpace(in.Nome)
	in.CPF = utils.NormalizeCPF(in.CPF)
	if in.Nome == "" || in.CPF == "" {
		return "Nome e CPF são obrigatórios"
	}
	if !utils.ValidCPF(in.CPF) {
		return "CPF inválido. Informe os 11 dígitos."
	}
	return ""
}

type ClienteController struct {
	DB *gorm.DB
}

func NewClienteController(db *gorm.DB) *ClienteController {
	return &ClienteController{DB: db}
}

// List returns every client ordered by name.
func (cc *ClienteController) List(c *gin.Context) {
	var clientes []models.Cliente
	if err := cc.DB.Order("nome asc").Find(&clientes).Error; err != nil {
		internalError(c, err, "Erro ao listar clientes")
		return
	}

	c.JSON(http.StatusOK, clientes)
}

func (cc *ClienteController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de cliente inválido")
	if !ok {
		return
	}

	var cliente models.Cliente
	if err := cc.DB.First(&cliente, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Cliente não encontrado")
		} else {
			internalError(c, err, "Erro ao buscar cliente")
		}
		return
	}

	c.JSON(http.StatusOK, cliente)
}

// GetByCPF accepts the CPF with or without punctuation.
func (cc *ClienteController) GetByCPF(c *gin.Context) {
	cpf := utils.NormalizeCPF(c.Param("cpf"))

	var cliente models.Cliente
	if err := cc.DB.Where("cpf = ?", cpf).First(&cliente).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Cliente não encontrado")
		} else {
			internalError(c, err, "Erro ao buscar cliente por CPF")
		}
		return
	}

	c.JSON(http.StatusOK, cliente)
}

func (cc *ClienteController) Create(c *gin.Context) {
	var input ClienteInput
	if !bindJSON(c, &input) {
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var existing models.Cliente
	if err := cc.DB.Select("id").Where("cpf = ?", input.CPF).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "CPF já cadastrado")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Erro ao criar cliente")
		return
	}

	cliente := models.Cliente{
		Nome:        input.Nome,
		CPF:         input.CPF,
		Telefone:    input.Telefone,
		Email:       input.Email,
		Observacoes: input.Observacoes,
	}

	if err := cc.DB.Create(&cliente).Error; err != nil {
		internalError(c, err, "Erro ao criar cliente")
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

func (cc *ClienteController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de cliente inválido")
	if !ok {
		return
	}

	var input ClienteInput
	if !bindJSON(c, &input) {
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	// CPF must stay unique across the other clients
	var existing models.Cliente
	if err := cc.DB.Select("id").Where("cpf = ? AND id <> ?", input.CPF, id).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "CPF já cadastrado para outro cliente")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Erro ao atualizar cliente")
		return
	}

	var cliente models.Cliente
	if err := cc.DB.First(&cliente, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Cliente não encontrado")
		} else {
			internalError(c, err, "Erro ao atualizar cliente")
		}
		return
	}

	cliente.Nome = input.Nome
	cliente.CPF = input.CPF
	cliente.Telefone = input.Telefone
	cliente.Email = input.Email
	cliente.Observacoes = input.Observacoes

	if err := cc.DB.Save(&cliente).Error; err != nil {
		internalError(c, err, "Erro ao atualizar cliente")
		return
	}

	c.JSON(http.StatusOK, cliente)
}

// Delete refuses to remove a client that still owns recurrences.
func (cc *ClienteController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "ID de cliente inválido")
	if !ok {
		return
	}

	var count int64
	if err := cc.DB.Model(&models.Recorrencia{}).Where("cliente_id = ?", id).Count(&count).Error; err != nil {
		internalError(c, err, "Erro ao excluir cliente")
		return
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Cliente possui recorrências associadas. Exclua as recorrências primeiro.")
		return
	}

	result := cc.DB.Where("id = ?", id).Delete(&models.Cliente{})
	if result.Error != nil {
		internalError(c, result.Error, "Erro ao excluir cliente")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Cliente não encontrado")
		return
	}

	c.Status(http.StatusNoContent)
}
