package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/task-manager/internal/config"
	"github.com/Dan9191/task-manager/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendOverdueDigest sends one user a plain-text list of their overdue tasks
func (s *Sender) SendOverdueDigest(to, name string, tasks []*models.OverdueItem) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("You have %d overdue task(s)", len(tasks))

	body := fmt.Sprintf("Dear %s,\n\nThe following tasks are past their due date:\n\n", name)
	for _, t := range tasks {
		body += fmt.Sprintf("  - %s (due %s)\n", t.Title, t.DueDate.Format("2006-01-02"))
	}
	body += "\nLog in to your dashboard to review them.\n\nBest regards,\nTask Manager"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
