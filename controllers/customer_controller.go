package controllers

import (
	"net/http"

	"crediario/services"

	"github.com/gin-gonic/gin"
)

// CustomerController trata as requisições do cadastro de clientes
type CustomerController struct {
	customers *services.CustomerService
	creditors *services.CreditorService
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customers *services.CustomerService, creditors *services.CreditorService) *CustomerController {
	return &CustomerController{
		customers: customers,
		creditors: creditors,
	}
}

// CreateCustomer trata o cadastro de um cliente
func (c *CustomerController) CreateCustomer(ctx *gin.Context) {
	var dto services.CreateCustomerDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	customer, err := c.customers.Create(dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, customer)
}

// GetCustomers trata a listagem de clientes
func (c *CustomerController) GetCustomers(ctx *gin.Context) {
	customers, err := c.customers.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, customers)
}

// GetCustomer trata a consulta de um cliente
func (c *CustomerController) GetCustomer(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	customer, err := c.customers.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, customer)
}

// GetCustomerCreditors trata a listagem de credores de um cliente
func (c *CustomerController) GetCustomerCreditors(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if _, err := c.customers.GetByID(id); err != nil {
		respondError(ctx, err)
		return
	}

	creditors, err := c.creditors.ListByCustomer(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, creditors)
}

// UpdateCustomer trata a atualização de um cliente
func (c *CustomerController) UpdateCustomer(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var dto services.UpdateCustomerDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	customer, err := c.customers.Update(id, dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, customer)
}

// DeleteCustomer trata a remoção de um cliente
func (c *CustomerController) DeleteCustomer(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.customers.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Cliente removido"})
}
