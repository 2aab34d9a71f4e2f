package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Erros de registro não encontrado
var (
	ErrCreditorNotFound    = errors.New("credor não encontrado")
	ErrCustomerNotFound    = errors.New("cliente não encontrado")
	ErrInstallmentNotFound = errors.New("parcela não encontrada")
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrSaleNotFound        = errors.New("venda não encontrada")
)

// IsNotFound verifica se o erro é de registro não encontrado
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCreditorNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrInstallmentNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSaleNotFound)
}

// ValidationError representa uma falha de validação de entrada
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError cria um erro de validação
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidationError verifica se o erro é de validação
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// translateValidationErrors converte erros do validator em mensagens legíveis
func translateValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewValidationError(err.Error())
	}
	var errorMessages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errorMessages = append(errorMessages, "campo "+e.Field()+" é obrigatório")
		case "gt":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ser maior que "+e.Param())
		case "gte":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ser maior ou igual a "+e.Param())
		case "lte":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ser menor ou igual a "+e.Param())
		case "min":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ter no mínimo "+e.Param()+" caracteres")
		case "max":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ter no máximo "+e.Param()+" caracteres")
		case "email":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ser um email válido")
		case "oneof":
			errorMessages = append(errorMessages, "campo "+e.Field()+" deve ser um de: "+e.Param())
		default:
			errorMessages = append(errorMessages, "campo "+e.Field()+" é inválido")
		}
	}
	return NewValidationError(strings.Join(errorMessages, "; "))
}
