package services

import (
	"time"

	"crediario/models"
	"crediario/utils"

	"gorm.io/gorm"
)

// ReminderService varre periodicamente as parcelas vencidas e envia
// lembretes por email. A varredura é somente leitura sobre o livro: o
// status de atraso continua sendo uma projeção calculada na leitura,
// nunca gravada.
type ReminderService struct {
	db       *gorm.DB
	email    *EmailService
	interval time.Duration
	now      func() time.Time
}

// NewReminderService cria uma nova instância de ReminderService
func NewReminderService(db *gorm.DB, email *EmailService, interval time.Duration) *ReminderService {
	return &ReminderService{
		db:       db,
		email:    email,
		interval: interval,
		now:      time.Now,
	}
}

// Start inicia o laço de lembretes
func (s *ReminderService) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			if err := s.ProcessOverdue(); err != nil {
				utils.LogError("Erro ao processar lembretes de atraso: %v", err)
			}
		}
	}()
}

// ProcessOverdue envia um lembrete para cada parcela ativa vencida e não paga
func (s *ReminderService) ProcessOverdue() error {
	now := s.now()

	var installments []models.Installment
	if err := s.db.Where("due_date < ? AND paid = ? AND canceled = ?", now, false, false).
		Order("due_date ASC").
		Find(&installments).Error; err != nil {
		return err
	}

	for _, inst := range installments {
		var creditor models.Creditor
		if err := s.db.First(&creditor, inst.CreditorID).Error; err != nil {
			continue
		}
		// Credor quitado manualmente não recebe cobrança
		if creditor.Status == models.CreditorStatusPaid {
			continue
		}

		var customer models.Customer
		if err := s.db.First(&customer, creditor.CustomerID).Error; err != nil || customer.Email == "" {
			continue
		}

		if s.email == nil {
			continue
		}
		if err := s.email.SendOverdueReminder(customer.Email, customer.Name, inst.Amount, inst.DueDate); err != nil {
			utils.LogError("Erro ao enviar lembrete da parcela %d: %v", inst.ID, err)
			continue
		}
		utils.GetMetrics().RecordLedgerOperation("reminder_send", nil)
	}

	return nil
}
