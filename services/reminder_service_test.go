package services

import (
	"testing"
	"time"

	"crediario/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessOverdue_ReadOnly(t *testing.T) {
	db := setupTestDB(t)
	genNow := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	creditors := newTestCreditorService(t, db, genNow)

	creditor := seedCreditor(t, db, 300, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	_, err := creditors.GenerateCarne(GenerateCarneDTO{CreditorID: creditor.ID, InstallmentCount: 3})
	require.NoError(t, err)

	// Três meses depois, tudo vencido
	reminder := NewReminderService(db, nil, time.Hour)
	reminder.now = func() time.Time {
		return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	}
	require.NoError(t, reminder.ProcessOverdue())

	// A varredura nunca migra status nem fecha parcelas
	var reloaded models.Creditor
	require.NoError(t, db.First(&reloaded, creditor.ID).Error)
	assert.Equal(t, models.CreditorStatusPending, reloaded.Status)

	var paid int64
	require.NoError(t, db.Model(&models.Installment{}).
		Where("creditor_id = ? AND paid = ?", creditor.ID, true).
		Count(&paid).Error)
	assert.Zero(t, paid)

	// O atraso segue visível como projeção de leitura
	view, err := creditors.View(creditor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CreditorStatusOverdue, DeriveStatus(&view.Creditor, reminder.now()))
}

func TestProcessOverdue_SkipsSettledCreditor(t *testing.T) {
	db := setupTestDB(t)
	creditors := newTestCreditorService(t, db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	creditor := seedCreditor(t, db, 300, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	_, err := creditors.GenerateCarne(GenerateCarneDTO{CreditorID: creditor.ID, InstallmentCount: 3})
	require.NoError(t, err)
	_, err = creditors.MarkCreditorPaid(creditor.ID)
	require.NoError(t, err)

	reminder := NewReminderService(db, nil, time.Hour)
	reminder.now = func() time.Time {
		return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	}
	assert.NoError(t, reminder.ProcessOverdue())
}
