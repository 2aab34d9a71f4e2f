package services

import (
	"errors"
	"fmt"
	"time"

	"crediario/models"
	"crediario/utils"

	"github.com/beevik/etree"
	"gorm.io/gorm"
)

// CarneService monta o documento imprimível do carnê e o distribui por
// email. A formatação final para impressão fica a cargo do front end; aqui
// só é produzido o documento XML com os dados achatados do carnê.
type CarneService struct {
	db        *gorm.DB
	email     *EmailService
	creditors *CreditorService
}

// NewCarneService cria uma nova instância de CarneService
func NewCarneService(db *gorm.DB, email *EmailService, creditors *CreditorService) *CarneService {
	return &CarneService{
		db:        db,
		email:     email,
		creditors: creditors,
	}
}

// BuildDocument monta o documento XML do carnê
func (s *CarneService) BuildDocument(creditor *models.Creditor, installments []models.Installment, items []models.SaleItem) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	carne := doc.CreateElement("carne")
	carne.CreateAttr("versao", fmt.Sprintf("%d", creditor.CarneVersion))
	carne.CreateAttr("gerado_em", time.Now().Format(time.RFC3339))

	credor := carne.CreateElement("credor")
	credor.CreateAttr("id", fmt.Sprintf("%d", creditor.ID))
	credor.CreateElement("cliente").SetText(creditor.CustomerName)
	credor.CreateElement("descricao").SetText(creditor.Description)
	credor.CreateElement("total").SetText(fmt.Sprintf("%.2f", creditor.TotalDebt))
	credor.CreateElement("saldo").SetText(fmt.Sprintf("%.2f", creditor.RemainingAmount))

	parcelas := carne.CreateElement("parcelas")
	parcelas.CreateAttr("quantidade", fmt.Sprintf("%d", len(installments)))
	for _, inst := range installments {
		p := parcelas.CreateElement("parcela")
		p.CreateAttr("numero", fmt.Sprintf("%d", inst.InstallmentNumber))
		p.CreateAttr("vencimento", inst.DueDate.Format("2006-01-02"))
		p.CreateAttr("valor", fmt.Sprintf("%.2f", inst.Amount))
		if inst.Paid {
			p.CreateAttr("paga", "sim")
		} else {
			p.CreateAttr("paga", "nao")
		}
	}

	if len(items) > 0 {
		itens := carne.CreateElement("itens")
		for _, item := range items {
			i := itens.CreateElement("item")
			i.CreateAttr("produto", item.ProductName)
			i.CreateAttr("quantidade", fmt.Sprintf("%d", item.Quantity))
			i.CreateAttr("valor_unitario", fmt.Sprintf("%.2f", item.UnitPrice))
		}
	}

	doc.Indent(2)
	return doc
}

// Export serializa o carnê de um credor. Falha sem efeitos colaterais
// quando o credor não existe ou o carnê ainda não foi gerado.
func (s *CarneService) Export(creditorID uint) ([]byte, error) {
	creditor, err := s.creditors.GetByID(creditorID)
	if err != nil {
		return nil, err
	}

	installments, err := s.creditors.ActiveInstallments(creditorID)
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return nil, NewValidationError("carnê ainda não foi gerado para este credor")
	}

	// Itens da venda que originou o credor, quando houver
	items := s.saleItemsFor(creditorID)

	doc := s.BuildDocument(creditor, installments, items)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.New("erro ao serializar carnê")
	}
	return out, nil
}

// saleItemsFor busca os itens da venda vinculada ao credor; ausência de
// venda não é erro
func (s *CarneService) saleItemsFor(creditorID uint) []models.SaleItem {
	var sale models.Sale
	if err := s.db.Where("creditor_id = ?", creditorID).
		Preload("Items").
		First(&sale).Error; err != nil {
		return nil
	}
	return sale.Items
}

// Send exporta o carnê e o envia por email ao cliente
func (s *CarneService) Send(creditorID uint) error {
	creditor, err := s.creditors.GetByID(creditorID)
	if err != nil {
		return err
	}

	document, err := s.Export(creditorID)
	if err != nil {
		return err
	}

	var customer models.Customer
	if err := s.db.First(&customer, creditor.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return errors.New("erro ao buscar cliente")
	}
	if customer.Email == "" {
		return NewValidationError("cliente não possui email cadastrado")
	}

	if err := s.email.SendCarneEmail(customer.Email, customer.Name, creditor.RemainingAmount, creditor.InstallmentCount, document); err != nil {
		return err
	}

	utils.GetMetrics().RecordLedgerOperation("carne_send", nil)
	return nil
}
