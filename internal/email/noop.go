package email

// NoopProvider используется когда отправка почты отключена
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider { return &NoopProvider{} }

func (p *NoopProvider) Send(email *Email) error { return nil }

func (p *NoopProvider) SendApplicationDecision(to, fullName, passTypeName, status, remarks string) error {
	return nil
}

func (p *NoopProvider) Validate() error { return nil }
