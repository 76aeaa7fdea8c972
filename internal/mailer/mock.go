package mailer

import "log/slog"

// Mock logs instead of dialing SMTP. It is the default sender: reminder
// delivery is simulated, only the synthesized sequence is real.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendReminder(recipient, subject, _ string) error {
	slog.Info("mock reminder sent", "recipient", recipient, "subject", subject)
	return nil
}
