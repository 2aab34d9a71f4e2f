package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crediario/database"
	"crediario/models"
	"crediario/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	creditorService := services.NewCreditorService(db, nil)
	carneService := services.NewCarneService(db, nil, creditorService)
	controller := NewCreditorController(creditorService, carneService)

	router := gin.New()
	router.POST("/api/creditors", controller.CreateCreditor)
	router.GET("/api/creditors", controller.GetCreditors)
	router.GET("/api/creditors/:id", controller.GetCreditor)
	router.GET("/api/creditors/:id/stats", controller.GetCreditorStats)
	router.GET("/api/creditors/:id/installments", controller.GetInstallments)
	router.POST("/api/creditors/:id/carne", controller.GenerateCarne)
	router.GET("/api/creditors/:id/carne", controller.ExportCarne)
	router.POST("/api/creditors/:id/pay", controller.PayCreditor)
	router.DELETE("/api/creditors/:id", controller.DeleteCreditor)
	router.POST("/api/installments/:id/pay", controller.PayInstallment)
	router.PUT("/api/installments/:id/due-date", controller.EditInstallmentDueDate)

	return router, db
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: "Maria da Silva", Email: "maria@example.com"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func TestCreditorLifecycleOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)
	customer := seedCustomer(t, db)

	// Abre o credor
	w := performRequest(router, http.MethodPost, "/api/creditors", gin.H{
		"customer_id": customer.ID,
		"total_debt":  300,
		"due_date":    "2024-01-15T00:00:00Z",
		"description": "Geladeira",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var creditor models.Creditor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creditor))
	require.NotZero(t, creditor.ID)

	// Gera o carnê em 3 parcelas
	w = performRequest(router, http.MethodPost,
		fmt.Sprintf("/api/creditors/%d/carne", creditor.ID),
		gin.H{"installment_count": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	var installments []models.Installment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &installments))
	require.Len(t, installments, 3)

	// Paga a primeira parcela
	w = performRequest(router, http.MethodPost,
		fmt.Sprintf("/api/installments/%d/pay", installments[0].ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Os agregados refletem o pagamento
	w = performRequest(router, http.MethodGet,
		fmt.Sprintf("/api/creditors/%d/stats", creditor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats services.CreditorStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalInstallments)
	assert.Equal(t, 1, stats.PaidInstallments)
	assert.InDelta(t, 100, stats.TotalPaid, 1e-9)
	assert.InDelta(t, 200, stats.TotalRemaining, 1e-9)

	// Exporta o carnê em XML
	w = performRequest(router, http.MethodGet,
		fmt.Sprintf("/api/creditors/%d/carne", creditor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<carne")

	// Quita o credor
	w = performRequest(router, http.MethodPost,
		fmt.Sprintf("/api/creditors/%d/pay", creditor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var settled models.Creditor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settled))
	assert.Equal(t, models.CreditorStatusPaid, settled.Status)
}

func TestCreditorNotFoundMapsTo404(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{
		"/api/creditors/999",
		"/api/creditors/999/stats",
		"/api/creditors/999/installments",
		"/api/creditors/999/carne",
	} {
		w := performRequest(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestCreateCreditorValidationMapsTo400(t *testing.T) {
	router, db := setupTestRouter(t)
	customer := seedCustomer(t, db)

	// Dívida não positiva
	w := performRequest(router, http.MethodPost, "/api/creditors", gin.H{
		"customer_id": customer.ID,
		"total_debt":  0,
		"due_date":    "2024-01-15T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Cliente inexistente
	w = performRequest(router, http.MethodPost, "/api/creditors", gin.H{
		"customer_id": 999,
		"total_debt":  100,
		"due_date":    "2024-01-15T00:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateCarneBeforeExportMapsTo400(t *testing.T) {
	router, db := setupTestRouter(t)
	customer := seedCustomer(t, db)

	creditor := &models.Creditor{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		TotalDebt:       100,
		RemainingAmount: 100,
		DueDate:         time.Now(),
		Status:          models.CreditorStatusPending,
	}
	require.NoError(t, db.Create(creditor).Error)

	w := performRequest(router, http.MethodGet,
		fmt.Sprintf("/api/creditors/%d/carne", creditor.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditInstallmentDueDateOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)
	customer := seedCustomer(t, db)

	creditor := &models.Creditor{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		TotalDebt:       300,
		RemainingAmount: 300,
		DueDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:          models.CreditorStatusPending,
	}
	require.NoError(t, db.Create(creditor).Error)

	w := performRequest(router, http.MethodPost,
		fmt.Sprintf("/api/creditors/%d/carne", creditor.ID),
		gin.H{"installment_count": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	var installments []models.Installment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &installments))

	w = performRequest(router, http.MethodPut,
		fmt.Sprintf("/api/installments/%d/due-date", installments[1].ID),
		gin.H{"due_date": "2024-01-05T00:00:00Z"})
	require.Equal(t, http.StatusOK, w.Code)

	var edited models.Installment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edited))
	assert.True(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).Equal(edited.DueDate))

	// Corpo sem vencimento é rejeitado
	w = performRequest(router, http.MethodPut,
		fmt.Sprintf("/api/installments/%d/due-date", installments[1].ID),
		gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCreditorOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)
	customer := seedCustomer(t, db)

	creditor := &models.Creditor{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		TotalDebt:       100,
		RemainingAmount: 100,
		DueDate:         time.Now(),
		Status:          models.CreditorStatusPending,
	}
	require.NoError(t, db.Create(creditor).Error)

	w := performRequest(router, http.MethodDelete,
		fmt.Sprintf("/api/creditors/%d", creditor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet,
		fmt.Sprintf("/api/creditors/%d", creditor.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// ID não numérico
	w = performRequest(router, http.MethodDelete, "/api/creditors/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
