package controllers

import (
	"net/http"

	"crediario/services"

	"github.com/gin-gonic/gin"
)

// respondError mapeia a taxonomia de erros dos serviços para códigos HTTP:
// não encontrado (404), validação (400), falha do armazenamento (500)
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
