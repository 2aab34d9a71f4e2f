package services

import (
	"testing"
	"time"

	"crediario/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		stored   models.CreditorStatus
		dueDate  time.Time
		expected models.CreditorStatus
	}{
		{
			name:     "pendente com vencimento futuro continua pendente",
			stored:   models.CreditorStatusPending,
			dueDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: models.CreditorStatusPending,
		},
		{
			name:     "pendente com vencimento passado deriva atrasado",
			stored:   models.CreditorStatusPending,
			dueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: models.CreditorStatusOverdue,
		},
		{
			name:     "pago é terminal mesmo com vencimento passado",
			stored:   models.CreditorStatusPaid,
			dueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: models.CreditorStatusPaid,
		},
		{
			name:     "atrasado gravado com vencimento futuro volta a pendente",
			stored:   models.CreditorStatusOverdue,
			dueDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: models.CreditorStatusPending,
		},
		{
			name:     "vencimento exatamente no relógio não é atraso",
			stored:   models.CreditorStatusPending,
			dueDate:  now,
			expected: models.CreditorStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creditor := &models.Creditor{Status: tt.stored, DueDate: tt.dueDate}
			assert.Equal(t, tt.expected, DeriveStatus(creditor, now))
			// Projeção pura: o registro não é alterado
			assert.Equal(t, tt.stored, creditor.Status)
		})
	}
}

func TestDeriveStatus_DoesNotPersist(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s := newTestCreditorService(t, db, now)

	// Vencido segundo o relógio, mas gravado como pendente
	creditor := seedCreditor(t, db, 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	view, err := s.View(creditor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CreditorStatusOverdue, view.Status)

	// A leitura deriva, nunca migra o status gravado
	var reloaded models.Creditor
	require.NoError(t, db.First(&reloaded, creditor.ID).Error)
	assert.Equal(t, models.CreditorStatusPending, reloaded.Status)
}

func TestFoldStats(t *testing.T) {
	installments := []models.Installment{
		{Amount: 100, Paid: true},
		{Amount: 50, Paid: false},
	}

	stats := FoldStats(installments)
	assert.Equal(t, 2, stats.TotalInstallments)
	assert.Equal(t, 1, stats.PaidInstallments)
	assert.InDelta(t, 100, stats.TotalPaid, 1e-9)
	assert.InDelta(t, 50, stats.TotalRemaining, 1e-9)
}

func TestFoldStats_IgnoresCanceled(t *testing.T) {
	installments := []models.Installment{
		{Amount: 100, Paid: true, Canceled: true},
		{Amount: 75, Paid: false, Canceled: true},
		{Amount: 50, Paid: false},
	}

	stats := FoldStats(installments)
	assert.Equal(t, 1, stats.TotalInstallments)
	assert.Zero(t, stats.PaidInstallments)
	assert.Zero(t, stats.TotalPaid)
	assert.InDelta(t, 50, stats.TotalRemaining, 1e-9)
}

func TestFoldStats_Empty(t *testing.T) {
	stats := FoldStats(nil)
	assert.Zero(t, stats.TotalInstallments)
	assert.Zero(t, stats.TotalRemaining)
}

func TestNextUnpaidDueDate(t *testing.T) {
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	installments := []models.Installment{
		{DueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Paid: true},
		{DueDate: mar, Paid: false},
		{DueDate: feb, Paid: false},
		{DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Paid: false, Canceled: true},
	}

	next, ok := nextUnpaidDueDate(installments)
	require.True(t, ok)
	assert.True(t, feb.Equal(next))

	_, ok = nextUnpaidDueDate([]models.Installment{{DueDate: feb, Paid: true}})
	assert.False(t, ok)
}
