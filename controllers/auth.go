// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nmalls-recorrencia/logger"
	"nmalls-recorrencia/models"
	"nmalls-recorrencia/utils"
)

type LoginInput struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type AuthController struct {
	DB          *gorm.DB
	JWTSecret   string
	ExpiryHours int
}

func NewAuthController(db *gorm.DB, secret string, expiryHours int) *AuthController {
	return &AuthController{DB: db, JWTSecret: secret, ExpiryHours: expiryHours}
}

// Login exchanges email and password for a signed token.
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Senha == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	var usuario models.Usuario
	if err := ac.DB.Where("email = ?", input.Email).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Credenciais inválidas")
		} else {
			internalError(c, err, "Erro ao fazer login")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Senha, usuario.Senha) {
		logger.Logger.Warn().Str("email", input.Email).Msg("login failed")
		utils.RespondWithError(c, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := utils.GenerateToken(ac.JWTSecret, ac.ExpiryHours, utils.Claims{
		UserID: usuario.ID.String(),
		Email:  usuario.Email,
		Role:   usuario.Role,
	})
	if err != nil {
		internalError(c, err, "Erro ao gerar token")
		return
	}

	now := time.Now()
	if err := ac.DB.Model(&usuario).Update("last_login", now).Error; err != nil {
		logger.Logger.Warn().Err(err).Str("email", usuario.Email).Msg("failed to record last login")
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Verificar runs behind the auth middleware and echoes the token's claims.
func (ac *AuthController) Verificar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valido": true,
		"usuario": gin.H{
			"id":    c.GetString(utils.CtxUserID),
			"email": c.GetString(utils.CtxEmail),
			"role":  c.GetString(utils.CtxRole),
		},
	})
}
