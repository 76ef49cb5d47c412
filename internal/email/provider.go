package email

// Provider определяет интерфейс для отправки доменных уведомлений
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendApplicationDecision уведомляет пассажира о решении по заявке
	SendApplicationDecision(to, fullName, passTypeName, status, remarks string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// Email представляет структуру email сообщения
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}
