package services

import (
	"testing"
	"time"

	"crediario/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	db := setupTestDB(t)
	s := NewCustomerService(db)

	customer, err := s.Create(CreateCustomerDTO{
		Name:  "Ana Lima",
		Phone: "11 99999-0000",
		Email: "ana@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, customer.ID)

	found, err := s.GetByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", found.Name)

	updated, err := s.Update(customer.ID, UpdateCustomerDTO{Phone: "11 98888-0000"})
	require.NoError(t, err)
	assert.Equal(t, "11 98888-0000", updated.Phone)
	assert.Equal(t, "Ana Lima", updated.Name)

	require.NoError(t, s.Delete(customer.ID))
	_, err = s.GetByID(customer.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerCreate_Invalid(t *testing.T) {
	db := setupTestDB(t)
	s := NewCustomerService(db)

	_, err := s.Create(CreateCustomerDTO{Name: "A"})
	assert.True(t, IsValidationError(err))

	_, err = s.Create(CreateCustomerDTO{Name: "Ana Lima", Email: "não-é-email"})
	assert.True(t, IsValidationError(err))
}

func TestCustomerDelete_BlockedByOpenCreditor(t *testing.T) {
	db := setupTestDB(t)
	s := NewCustomerService(db)

	creditor := seedCreditor(t, db, 200, time.Now().AddDate(0, 1, 0))

	err := s.Delete(creditor.CustomerID)
	assert.True(t, IsValidationError(err))

	// Credor quitado libera a remoção
	require.NoError(t, db.Model(&models.Creditor{}).
		Where("id = ?", creditor.ID).
		Update("status", models.CreditorStatusPaid).Error)
	assert.NoError(t, s.Delete(creditor.CustomerID))
}

func TestProductCreate_DuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	s := NewProductService(db)

	_, err := s.Create(CreateProductDTO{Name: "Fogão", Code: "FOG-01", Price: 800, Stock: 3})
	require.NoError(t, err)

	_, err = s.Create(CreateProductDTO{Name: "Fogão Inox", Code: "FOG-01", Price: 950, Stock: 2})
	assert.True(t, IsValidationError(err))
}

func TestProductUpdate_PartialFields(t *testing.T) {
	db := setupTestDB(t)
	s := NewProductService(db)

	product, err := s.Create(CreateProductDTO{Name: "Fogão", Code: "FOG-01", Price: 800, Stock: 3})
	require.NoError(t, err)

	zero := 0
	updated, err := s.Update(product.ID, UpdateProductDTO{Stock: &zero})
	require.NoError(t, err)
	assert.Zero(t, updated.Stock)
	assert.Equal(t, "Fogão", updated.Name)
	assert.InDelta(t, 800, updated.Price, 1e-9)
}

func TestUserService_SignUpAndPassword(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserService(db)

	user, err := s.CreateUserInternal(CreateUserRequest{
		Name:     "Operadora",
		Email:    "op@loja.com",
		Password: "Senha@Forte1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "Senha@Forte1", user.Password)

	found, err := s.FindByEmail("  OP@loja.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	assert.True(t, s.CheckPassword(found, "Senha@Forte1"))
	assert.False(t, s.CheckPassword(found, "senha-errada"))

	_, err = s.CreateUserInternal(CreateUserRequest{
		Name:     "Outra",
		Email:    "OP@LOJA.COM",
		Password: "Senha@Forte2",
	})
	assert.True(t, IsValidationError(err))
}
