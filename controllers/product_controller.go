package controllers

import (
	"net/http"

	"crediario/services"

	"github.com/gin-gonic/gin"
)

// ProductController trata as requisições do catálogo de produtos
type ProductController struct {
	products *services.ProductService
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// CreateProduct trata o cadastro de um produto
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var dto services.CreateProductDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	product, err := c.products.Create(dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// GetProducts trata a listagem de produtos
func (c *ProductController) GetProducts(ctx *gin.Context) {
	products, err := c.products.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// GetProduct trata a consulta de um produto
func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	product, err := c.products.GetByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// UpdateProduct trata a atualização de um produto
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var dto services.UpdateProductDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	product, err := c.products.Update(id, dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct trata a remoção de um produto
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.products.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Produto removido"})
}
