package controllers

import (
	"net/http"
	"strconv"
	"time"

	"crediario/models"
	"crediario/services"

	"github.com/gin-gonic/gin"
)

// CreditorController trata as requisições do livro do crediário
type CreditorController struct {
	creditors *services.CreditorService
	carnes    *services.CarneService
}

// CreditorListItemDTO representa um credor na listagem, com status derivado
type CreditorListItemDTO struct {
	models.Creditor
	DerivedStatus models.CreditorStatus `json:"derived_status"`
}

// EditDueDateRequest representa a alteração de vencimento de uma parcela
type EditDueDateRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// NewCreditorController cria uma nova instância de CreditorController
func NewCreditorController(creditors *services.CreditorService, carnes *services.CarneService) *CreditorController {
	return &CreditorController{
		creditors: creditors,
		carnes:    carnes,
	}
}

// idParam extrai o parâmetro de rota "id"
func idParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

// CreateCreditor trata a abertura de um credor
func (c *CreditorController) CreateCreditor(ctx *gin.Context) {
	var dto services.CreateCreditorDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	creditor, err := c.creditors.Create(dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, creditor)
}

// GetCreditors trata a listagem de credores com status derivado do relógio
func (c *CreditorController) GetCreditors(ctx *gin.Context) {
	creditors, err := c.creditors.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := time.Now()
	items := make([]CreditorListItemDTO, len(creditors))
	for i := range creditors {
		items[i] = CreditorListItemDTO{
			Creditor:      creditors[i],
			DerivedStatus: services.DeriveStatus(&creditors[i], now),
		}
	}

	ctx.JSON(http.StatusOK, items)
}

// GetCreditor trata a consulta de um credor: status derivado e agregados
// recalculados das parcelas
func (c *CreditorController) GetCreditor(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	view, err := c.creditors.View(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// GetCreditorStats trata a consulta dos agregados de um credor
func (c *CreditorController) GetCreditorStats(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	stats, err := c.creditors.StatsFor(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetInstallments trata a listagem das parcelas ativas de um credor
func (c *CreditorController) GetInstallments(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if _, err := c.creditors.GetByID(id); err != nil {
		respondError(ctx, err)
		return
	}

	installments, err := c.creditors.ActiveInstallments(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, installments)
}

// GenerateCarne trata a geração do carnê de um credor
func (c *CreditorController) GenerateCarne(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var dto services.GenerateCarneDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	dto.CreditorID = id

	installments, err := c.creditors.GenerateCarne(dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, installments)
}

// ExportCarne trata a exportação do documento XML do carnê
func (c *CreditorController) ExportCarne(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	document, err := c.carnes.Export(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="carne.xml"`)
	ctx.Data(http.StatusOK, "application/xml", document)
}

// SendCarne trata o envio do carnê por email ao cliente
func (c *CreditorController) SendCarne(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.carnes.Send(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Carnê enviado"})
}

// PayInstallment trata o pagamento de uma parcela
func (c *CreditorController) PayInstallment(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	installment, err := c.creditors.MarkInstallmentPaid(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, installment)
}

// EditInstallmentDueDate trata a alteração de vencimento de uma parcela
func (c *CreditorController) EditInstallmentDueDate(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req EditDueDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	installment, err := c.creditors.EditInstallmentDueDate(id, req.DueDate)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, installment)
}

// PayCreditor trata a quitação integral de um credor
func (c *CreditorController) PayCreditor(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	creditor, err := c.creditors.MarkCreditorPaid(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, creditor)
}

// DeleteCreditor trata a remoção de um credor e de suas parcelas
func (c *CreditorController) DeleteCreditor(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.creditors.DeleteCreditor(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Credor removido"})
}
