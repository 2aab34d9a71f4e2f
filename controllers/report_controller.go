package controllers

import (
	"net/http"
	"time"

	"crediario/models"
	"crediario/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportController trata os agregados do painel de acompanhamento
type ReportController struct {
	db *gorm.DB
}

// DashboardSummary representa o resumo do painel
type DashboardSummary struct {
	OpenCreditors    int64   `json:"open_creditors"`
	OpenCreditTotal  float64 `json:"open_credit_total"`
	OverdueCount     int64   `json:"overdue_installments"`
	OverdueTotal     float64 `json:"overdue_total"`
	ReceivedInPeriod float64 `json:"received_in_period"`
	SalesInPeriod    int64   `json:"sales_in_period"`
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{db: db}
}

// GetSummary trata a consulta do resumo do painel. Todos os agregados são
// recalculados na leitura, nunca cacheados.
func (c *ReportController) GetSummary(ctx *gin.Context) {
	now := time.Now()
	periodStart := now.AddDate(0, -1, 0)
	if s := ctx.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "parâmetro from inválido"})
			return
		}
		periodStart = parsed
	}

	var summary DashboardSummary

	if err := c.db.Model(&models.Creditor{}).
		Where("status <> ?", models.CreditorStatusPaid).
		Count(&summary.OpenCreditors).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.db.Model(&models.Creditor{}).
		Where("status <> ?", models.CreditorStatusPaid).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Scan(&summary.OpenCreditTotal).Error; err != nil {
		respondError(ctx, err)
		return
	}

	overdue := c.db.Model(&models.Installment{}).
		Where("paid = ? AND canceled = ? AND due_date < ?", false, false, now)
	if err := overdue.Count(&summary.OverdueCount).Error; err != nil {
		respondError(ctx, err)
		return
	}
	if err := c.db.Model(&models.Installment{}).
		Where("paid = ? AND canceled = ? AND due_date < ?", false, false, now).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.OverdueTotal).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.db.Model(&models.Installment{}).
		Where("paid = ? AND canceled = ? AND paid_at >= ?", true, false, periodStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.ReceivedInPeriod).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.db.Model(&models.Sale{}).
		Where("created_at >= ?", periodStart).
		Count(&summary.SalesInPeriod).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// GetMetrics trata a consulta das métricas internas da aplicação
func (c *ReportController) GetMetrics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
}
