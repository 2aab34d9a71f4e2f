package services

import (
	"fmt"
	"io"
	"time"

	"crediario/config"

	"gopkg.in/gomail.v2"
)

// EmailService fornece métodos para envio de email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	config *config.Config
}

// NewEmailService cria uma nova instância de EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		config: cfg,
	}
}

// SendEmail envia um email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email: %v", err)
	}

	return nil
}

// SendCarneEmail envia o carnê gerado em anexo
func (s *EmailService) SendCarneEmail(to, customerName string, total float64, installments int, document []byte) error {
	subject := "Seu carnê de pagamento"
	body := fmt.Sprintf(`
		<h2>Carnê de pagamento</h2>
		<p>Olá, %s!</p>
		<p>Seu carnê foi gerado com %d parcelas, totalizando R$ %.2f.</p>
		<p>O documento segue em anexo.</p>
		<p>Data: %s</p>
	`, customerName, installments, total, time.Now().Format("02/01/2006 15:04:05"))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	m.Attach("carne.xml", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(document)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar carnê: %v", err)
	}

	return nil
}

// SendOverdueReminder envia um lembrete de parcela vencida
func (s *EmailService) SendOverdueReminder(to, customerName string, amount float64, dueDate time.Time) error {
	subject := "Lembrete: parcela em atraso"
	body := fmt.Sprintf(`
		<h2>Parcela em atraso</h2>
		<p>Olá, %s!</p>
		<p>Identificamos uma parcela de R$ %.2f vencida em %s.</p>
		<p>Por favor, compareça à loja para regularizar o pagamento.</p>
	`, customerName, amount, dueDate.Format("02/01/2006"))

	return s.SendEmail(to, subject, body)
}

// SendCreditorPaidNotification envia a notificação de quitação do crediário
func (s *EmailService) SendCreditorPaidNotification(to, customerName string, creditorID uint) error {
	subject := "Parabéns! Seu crediário foi quitado"
	body := fmt.Sprintf(`
		<h2>Parabéns, %s!</h2>
		<p>Seu crediário #%d foi quitado com sucesso.</p>
		<p>Obrigado pela preferência!</p>
		<p>Atenciosamente,<br>Equipe da loja</p>
	`, customerName, creditorID)

	return s.SendEmail(to, subject, body)
}
