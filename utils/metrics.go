package utils

import (
	"sync"
	"time"
)

// Metrics contém as métricas da aplicação
type Metrics struct {
	mu sync.RWMutex

	// Métricas de requisições
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Métricas do livro do crediário
	CreditorsOpened   int64
	CreditorsSettled  int64
	CarnesGenerated   int64
	CarnesSent        int64
	InstallmentsPaid  int64
	SalesRecorded     int64
	RemindersSent     int64
	LastLedgerOp      string
	LastLedgerOpTime  time.Time

	// Métricas de erros
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics retorna a instância de métricas
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest registra as métricas de uma requisição
func (m *Metrics) RecordRequest(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if err != nil {
		m.FailedRequests++
		m.recordError(err)
	}
}

// RecordLedgerOperation registra as métricas de uma operação do livro
func (m *Metrics) RecordLedgerOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastLedgerOp = operation
	m.LastLedgerOpTime = time.Now()

	switch operation {
	case "creditor_open":
		m.CreditorsOpened++
	case "creditor_settle", "creditor_pay":
		m.CreditorsSettled++
	case "carne_generate":
		m.CarnesGenerated++
	case "carne_send":
		m.CarnesSent++
	case "installment_pay":
		m.InstallmentsPaid++
	case "sale_create":
		m.SalesRecorded++
	case "reminder_send":
		m.RemindersSent++
	}

	if err != nil {
		m.recordError(err)
	}
}

// recordError registra as métricas de um erro; chamador deve segurar o lock
func (m *Metrics) recordError(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}
	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot retorna um snapshot das métricas atuais
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_requests":    m.TotalRequests,
		"failed_requests":   m.FailedRequests,
		"average_latency":   m.AverageLatency,
		"creditors_opened":  m.CreditorsOpened,
		"creditors_settled": m.CreditorsSettled,
		"carnes_generated":  m.CarnesGenerated,
		"carnes_sent":       m.CarnesSent,
		"installments_paid": m.InstallmentsPaid,
		"sales_recorded":    m.SalesRecorded,
		"reminders_sent":    m.RemindersSent,
		"error_count":       m.ErrorCount,
		"last_error_time":   m.LastErrorTime,
		"error_types":       m.ErrorTypes,
	}
}

// ResetMetrics zera todas as métricas
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.CreditorsOpened = 0
	m.CreditorsSettled = 0
	m.CarnesGenerated = 0
	m.CarnesSent = 0
	m.InstallmentsPaid = 0
	m.SalesRecorded = 0
	m.RemindersSent = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
