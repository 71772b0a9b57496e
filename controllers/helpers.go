package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nmalls-recorrencia/logger"
	"nmalls-recorrencia/utils"
)

// parseIDParam reads a UUID path parameter, answering 400 when it is malformed.
func parseIDParam(c *gin.Context, name, invalidMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, invalidMsg)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return false
	}
	return true
}

// internalError logs err and answers 500 with msg, never echoing err.
func internalError(c *gin.Context, err error, msg string) {
	logger.Logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg(msg)
	utils.RespondWithError(c, http.StatusInternalServerError, msg)
}
