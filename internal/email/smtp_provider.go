package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig - конфигурация SMTP провайдера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Validate проверяет валидность конфигурации
func (c SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.IsHTML {
		m.SetBody("text/html", email.Body)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

// SendApplicationDecision уведомляет пассажира о решении по заявке
func (p *SMTPProvider) SendApplicationDecision(to, fullName, passTypeName, status, remarks string) error {
	body := renderDecisionBody(fullName, passTypeName, status, remarks)

	return p.Send(&Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Your bus pass application is %s", status),
		Body:    body,
		IsHTML:  true,
	})
}

// Validate проверяет конфигурацию провайдера
func (p *SMTPProvider) Validate() error {
	return p.config.Validate()
}
