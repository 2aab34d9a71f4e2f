package services

import (
	"time"

	"crediario/models"
)

// DeriveStatus calcula o status de um credor em função do relógio.
// É uma projeção de leitura: nunca grava nada no banco. O status "pago"
// é terminal e não é rebaixado pela derivação.
func DeriveStatus(c *models.Creditor, now time.Time) models.CreditorStatus {
	if c.Status == models.CreditorStatusPaid {
		return models.CreditorStatusPaid
	}
	if c.DueDate.Before(now) {
		return models.CreditorStatusOverdue
	}
	return models.CreditorStatusPending
}

// CreditorStats representa os agregados derivados das parcelas de um credor
type CreditorStats struct {
	TotalInstallments int     `json:"total_installments"`
	PaidInstallments  int     `json:"paid_installments"`
	TotalPaid         float64 `json:"total_paid"`
	TotalRemaining    float64 `json:"total_remaining"`
}

// FoldStats calcula os agregados a partir das parcelas. Parcelas canceladas
// (carnês substituídos) são ignoradas. Sempre recalculado na leitura,
// nunca cacheado.
func FoldStats(installments []models.Installment) CreditorStats {
	var stats CreditorStats
	for _, inst := range installments {
		if inst.Canceled {
			continue
		}
		stats.TotalInstallments++
		if inst.Paid {
			stats.PaidInstallments++
			stats.TotalPaid = round2(stats.TotalPaid + inst.Amount)
		} else {
			stats.TotalRemaining = round2(stats.TotalRemaining + inst.Amount)
		}
	}
	return stats
}

// nextUnpaidDueDate retorna a menor data de vencimento entre as parcelas
// ativas não pagas; ok=false quando não existe nenhuma.
func nextUnpaidDueDate(installments []models.Installment) (time.Time, bool) {
	var next time.Time
	found := false
	for _, inst := range installments {
		if inst.Canceled || inst.Paid {
			continue
		}
		if !found || inst.DueDate.Before(next) {
			next = inst.DueDate
			found = true
		}
	}
	return next, found
}
