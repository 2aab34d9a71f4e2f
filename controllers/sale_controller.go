package controllers

import (
	"net/http"
	"strconv"

	"crediario/services"

	"github.com/gin-gonic/gin"
)

// SaleController trata as requisições de vendas do PDV
type SaleController struct {
	sales *services.SaleService
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(sales *services.SaleService) *SaleController {
	return &SaleController{sales: sales}
}

// CreateSale trata o registro de uma venda
func (c *SaleController) CreateSale(ctx *gin.Context) {
	var dto services.CreateSaleDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	sale, err := c.sales.Create(dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// GetSale trata a consulta de uma venda
func (c *SaleController) GetSale(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	sale, err := c.sales.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// GetSalesByCustomer trata a listagem de vendas por cliente
func (c *SaleController) GetSalesByCustomer(ctx *gin.Context) {
	customerID, err := strconv.ParseUint(ctx.Query("customer_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "customer_id inválido"})
		return
	}

	sales, err := c.sales.ListByCustomer(uint(customerID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sales)
}
