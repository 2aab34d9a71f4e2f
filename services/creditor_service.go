package services

import (
	"errors"
	"math"
	"time"

	"crediario/models"
	"crediario/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateCreditorDTO representa os dados para abertura de um credor
type CreateCreditorDTO struct {
	CustomerID       uint      `json:"customer_id" validate:"required"`
	TotalDebt        float64   `json:"total_debt" validate:"required,gt=0"`
	DueDate          time.Time `json:"due_date" validate:"required"`
	Description      string    `json:"description" validate:"omitempty,max=255"`
	InstallmentCount int       `json:"installment_count" validate:"omitempty,gte=1,lte=36"`
}

// GenerateCarneDTO representa os dados para geração de um carnê
type GenerateCarneDTO struct {
	CreditorID       uint       `json:"-" validate:"required"`
	InstallmentCount int        `json:"installment_count" validate:"required,gte=1,lte=36"`
	AnchorDate       *time.Time `json:"anchor_date,omitempty"`
}

// CreditorViewDTO representa a visão de leitura de um credor, com status
// derivado e agregados recalculados das parcelas
type CreditorViewDTO struct {
	Creditor    models.Creditor       `json:"creditor"`
	Status      models.CreditorStatus `json:"status"`
	Stats       CreditorStats         `json:"stats"`
	NextDueDate time.Time             `json:"next_due_date"`
}

// CreditorService fornece métodos para o livro do crediário
type CreditorService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	now       func() time.Time
}

// NewCreditorService cria uma nova instância de CreditorService
func NewCreditorService(db *gorm.DB, email *EmailService) *CreditorService {
	return &CreditorService{
		db:        db,
		validator: validator.New(),
		email:     email,
		now:       time.Now,
	}
}

// round2 arredonda um valor monetário para centavos
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SplitInstallmentAmounts divide um total em n parcelas arredondadas para
// centavos. A última parcela absorve a sobra do arredondamento, de modo que
// a soma das parcelas é exatamente igual ao total.
func SplitInstallmentAmounts(total float64, count int) []float64 {
	amounts := make([]float64, count)
	per := round2(total / float64(count))
	for i := 0; i < count-1; i++ {
		amounts[i] = per
	}
	amounts[count-1] = round2(total - per*float64(count-1))
	return amounts
}

// Create abre um novo credor para um cliente
func (s *CreditorService) Create(dto CreateCreditorDTO) (*models.Creditor, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("erro ao iniciar transação")
	}

	// Verifica se o cliente existe; o nome é copiado de forma desnormalizada
	var customer models.Customer
	if err := tx.First(&customer, dto.CustomerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.New("erro ao buscar cliente")
	}

	creditor := &models.Creditor{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		TotalDebt:        round2(dto.TotalDebt),
		PaidAmount:       0,
		RemainingAmount:  round2(dto.TotalDebt),
		DueDate:          dto.DueDate,
		Description:      dto.Description,
		InstallmentCount: dto.InstallmentCount,
		Status:           models.CreditorStatusPending,
	}

	if err := tx.Create(creditor).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao criar credor")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("erro ao confirmar transação")
	}

	utils.GetMetrics().RecordLedgerOperation("creditor_open", nil)
	return creditor, nil
}

// GetByID retorna um credor por ID
func (s *CreditorService) GetByID(id uint) (*models.Creditor, error) {
	var creditor models.Creditor
	if err := s.db.First(&creditor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditorNotFound
		}
		return nil, err
	}
	return &creditor, nil
}

// List retorna todos os credores
func (s *CreditorService) List() ([]models.Creditor, error) {
	var creditors []models.Creditor
	if err := s.db.Order("due_date ASC").Find(&creditors).Error; err != nil {
		return nil, err
	}
	return creditors, nil
}

// ListByCustomer retorna os credores de um cliente
func (s *CreditorService) ListByCustomer(customerID uint) ([]models.Creditor, error) {
	var creditors []models.Creditor
	if err := s.db.Where("customer_id = ?", customerID).
		Order("due_date ASC").
		Find(&creditors).Error; err != nil {
		return nil, err
	}
	return creditors, nil
}

// ActiveInstallments retorna as parcelas ativas (não canceladas) de um credor
func (s *CreditorService) ActiveInstallments(creditorID uint) ([]models.Installment, error) {
	var installments []models.Installment
	if err := s.db.Where("creditor_id = ? AND canceled = ?", creditorID, false).
		Order("installment_number ASC").
		Find(&installments).Error; err != nil {
		return nil, err
	}
	return installments, nil
}

// GenerateCarne gera o carnê de um credor: divide o saldo devedor atual em
// parcelas mensais a partir da data âncora. A geração é versionada: as
// parcelas do carnê anterior são canceladas na mesma transação, nunca
// sobrepostas.
func (s *CreditorService) GenerateCarne(dto GenerateCarneDTO) ([]models.Installment, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("erro ao iniciar transação")
	}

	var creditor models.Creditor
	if err := tx.First(&creditor, dto.CreditorID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditorNotFound
		}
		return nil, errors.New("erro ao buscar credor")
	}

	if creditor.RemainingAmount <= 0 {
		tx.Rollback()
		return nil, NewValidationError("credor não possui saldo devedor")
	}

	// Cancela as parcelas do carnê anterior
	if err := tx.Model(&models.Installment{}).
		Where("creditor_id = ? AND canceled = ?", creditor.ID, false).
		Update("canceled", true).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao cancelar carnê anterior")
	}

	anchor := creditor.DueDate
	if dto.AnchorDate != nil {
		anchor = *dto.AnchorDate
	}

	version := creditor.CarneVersion + 1
	amounts := SplitInstallmentAmounts(creditor.RemainingAmount, dto.InstallmentCount)

	installments := make([]models.Installment, dto.InstallmentCount)
	for i := 0; i < dto.InstallmentCount; i++ {
		// Aritmética de mês calendário do Go: o dia é preservado quando
		// válido e normalizado quando o mês destino é mais curto
		// (31/jan + 1 mês vira 02/mar ou 03/mar)
		installments[i] = models.Installment{
			CreditorID:        creditor.ID,
			BatchVersion:      version,
			InstallmentNumber: i + 1,
			DueDate:           anchor.AddDate(0, i, 0),
			Amount:            amounts[i],
			Paid:              false,
		}
		if err := tx.Create(&installments[i]).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("erro ao criar parcela")
		}
	}

	creditor.CarneVersion = version
	creditor.InstallmentCount = dto.InstallmentCount
	creditor.DueDate = anchor
	if err := tx.Save(&creditor).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao atualizar credor")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("erro ao confirmar transação")
	}

	utils.GetMetrics().RecordLedgerOperation("carne_generate", nil)
	return installments, nil
}

// StatsFor recalcula os agregados de um credor a partir das parcelas ativas
func (s *CreditorService) StatsFor(creditorID uint) (*CreditorStats, error) {
	if _, err := s.GetByID(creditorID); err != nil {
		return nil, err
	}
	installments, err := s.ActiveInstallments(creditorID)
	if err != nil {
		return nil, err
	}
	stats := FoldStats(installments)
	return &stats, nil
}

// NextDueDate retorna o menor vencimento entre as parcelas ativas não pagas;
// quando não existem parcelas, cai no vencimento do próprio credor
func (s *CreditorService) NextDueDate(creditorID uint) (time.Time, error) {
	creditor, err := s.GetByID(creditorID)
	if err != nil {
		return time.Time{}, err
	}
	installments, err := s.ActiveInstallments(creditorID)
	if err != nil {
		return time.Time{}, err
	}
	if next, ok := nextUnpaidDueDate(installments); ok {
		return next, nil
	}
	return creditor.DueDate, nil
}

// View monta a visão de leitura de um credor: status derivado do relógio e
// agregados recalculados das parcelas
func (s *CreditorService) View(creditorID uint) (*CreditorViewDTO, error) {
	creditor, err := s.GetByID(creditorID)
	if err != nil {
		return nil, err
	}
	installments, err := s.ActiveInstallments(creditorID)
	if err != nil {
		return nil, err
	}
	stats := FoldStats(installments)
	next := creditor.DueDate
	if d, ok := nextUnpaidDueDate(installments); ok {
		next = d
	}
	return &CreditorViewDTO{
		Creditor:    *creditor,
		Status:      DeriveStatus(creditor, s.now()),
		Stats:       stats,
		NextDueDate: next,
	}, nil
}

// MarkInstallmentPaid registra o pagamento de uma parcela. Na mesma
// transação os campos agregados do credor são recalculados da dobra sobre
// as parcelas, e o credor é quitado quando a última parcela aberta fecha.
func (s *CreditorService) MarkInstallmentPaid(installmentID uint) (*models.Installment, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("erro ao iniciar transação")
	}

	var installment models.Installment
	if err := tx.First(&installment, installmentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstallmentNotFound
		}
		return nil, errors.New("erro ao buscar parcela")
	}

	if installment.Canceled {
		tx.Rollback()
		return nil, NewValidationError("parcela pertence a um carnê cancelado")
	}

	// Idempotente: pagar duas vezes só sobrescreve paid_at
	now := s.now()
	installment.Paid = true
	installment.PaidAt = &now
	if err := tx.Save(&installment).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao atualizar parcela")
	}

	if err := s.recomputeCreditor(tx, installment.CreditorID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("erro ao confirmar transação")
	}

	utils.GetMetrics().RecordLedgerOperation("installment_pay", nil)
	return &installment, nil
}

// recomputeCreditor realinha os campos do credor com a dobra sobre as
// parcelas ativas, dentro da transação corrente
func (s *CreditorService) recomputeCreditor(tx *gorm.DB, creditorID uint) error {
	var creditor models.Creditor
	if err := tx.First(&creditor, creditorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCreditorNotFound
		}
		return errors.New("erro ao buscar credor")
	}

	var installments []models.Installment
	if err := tx.Where("creditor_id = ? AND canceled = ?", creditorID, false).
		Find(&installments).Error; err != nil {
		return errors.New("erro ao buscar parcelas")
	}

	stats := FoldStats(installments)
	creditor.RemainingAmount = stats.TotalRemaining
	creditor.PaidAmount = round2(creditor.TotalDebt - stats.TotalRemaining)
	if next, ok := nextUnpaidDueDate(installments); ok {
		creditor.DueDate = next
	}

	settled := stats.TotalInstallments > 0 && stats.TotalRemaining == 0
	if settled {
		creditor.Status = models.CreditorStatusPaid
	}

	if err := tx.Save(&creditor).Error; err != nil {
		return errors.New("erro ao atualizar credor")
	}

	if settled {
		s.notifySettled(&creditor)
	}
	return nil
}

// notifySettled envia a notificação de quitação; falha de email não
// interrompe a operação
func (s *CreditorService) notifySettled(creditor *models.Creditor) {
	if s.email == nil {
		return
	}
	var customer models.Customer
	if err := s.db.First(&customer, creditor.CustomerID).Error; err != nil || customer.Email == "" {
		return
	}
	if err := s.email.SendCreditorPaidNotification(customer.Email, creditor.CustomerName, creditor.ID); err != nil {
		utils.LogError("Erro ao enviar notificação de quitação: %v", err)
	}
	utils.GetMetrics().RecordLedgerOperation("creditor_settle", nil)
}

// MarkCreditorPaid quita um credor de uma vez: fecha todas as parcelas
// abertas do carnê ativo e zera o saldo, tudo na mesma transação
func (s *CreditorService) MarkCreditorPaid(creditorID uint) (*models.Creditor, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("erro ao iniciar transação")
	}

	var creditor models.Creditor
	if err := tx.First(&creditor, creditorID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditorNotFound
		}
		return nil, errors.New("erro ao buscar credor")
	}

	now := s.now()
	if err := tx.Model(&models.Installment{}).
		Where("creditor_id = ? AND canceled = ? AND paid = ?", creditor.ID, false, false).
		Updates(map[string]interface{}{"paid": true, "paid_at": now}).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao quitar parcelas")
	}

	creditor.Status = models.CreditorStatusPaid
	creditor.PaidAmount = creditor.TotalDebt
	creditor.RemainingAmount = 0
	if err := tx.Save(&creditor).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao atualizar credor")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("erro ao confirmar transação")
	}

	s.notifySettled(&creditor)
	utils.GetMetrics().RecordLedgerOperation("creditor_pay", nil)
	return &creditor, nil
}

// EditInstallmentDueDate sobrescreve o vencimento de uma parcela. Não há
// validação de ordenação entre parcelas: o novo vencimento pode ficar antes
// da parcela anterior
func (s *CreditorService) EditInstallmentDueDate(installmentID uint, newDate time.Time) (*models.Installment, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("erro ao iniciar transação")
	}

	var installment models.Installment
	if err := tx.First(&installment, installmentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstallmentNotFound
		}
		return nil, errors.New("erro ao buscar parcela")
	}

	installment.DueDate = newDate
	if err := tx.Save(&installment).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao atualizar parcela")
	}

	// Mantém o vencimento do credor alinhado com a próxima parcela aberta
	var installments []models.Installment
	if err := tx.Where("creditor_id = ? AND canceled = ?", installment.CreditorID, false).
		Find(&installments).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("erro ao buscar parcelas")
	}
	if next, ok := nextUnpaidDueDate(installments); ok {
		if err := tx.Model(&models.Creditor{}).
			Where("id = ?", installment.CreditorID).
			Update("due_date", next).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("erro ao atualizar credor")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("erro ao confirmar transação")
	}

	return &installment, nil
}

// DeleteCreditor remove um credor e suas parcelas na mesma transação
func (s *CreditorService) DeleteCreditor(creditorID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("erro ao iniciar transação")
	}

	var creditor models.Creditor
	if err := tx.First(&creditor, creditorID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCreditorNotFound
		}
		return errors.New("erro ao buscar credor")
	}

	if err := tx.Where("creditor_id = ?", creditor.ID).
		Delete(&models.Installment{}).Error; err != nil {
		tx.Rollback()
		return errors.New("erro ao remover parcelas")
	}

	if err := tx.Delete(&creditor).Error; err != nil {
		tx.Rollback()
		return errors.New("erro ao remover credor")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.New("erro ao confirmar transação")
	}

	return nil
}
