// Package notify sends customer emails over SMTP.
package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/kmandell/mechanic-shop/internal/config"
	"github.com/kmandell/mechanic-shop/internal/models"
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

// SendTicketCompleted notifies a customer that their service ticket is done
func (s *Sender) SendTicketCompleted(to, name string, ticket *models.ServiceTicket) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Service Ticket #%d Completed", ticket.ID)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Work on your vehicle (%s) has been completed.\n"+
			"Service performed: %s\n\n"+
			"Your vehicle is ready for pickup during business hours.\n"+
			"\nBest regards,\nMechanic Shop",
		name, ticket.VehicleInfo, ticket.Description,
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendOverdueReminder reminds a customer about a ticket that has been open
// for too long
func (s *Sender) SendOverdueReminder(to, name string, ticket *models.ServiceTicket) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Update on Service Ticket #%d", ticket.ID)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your service ticket for %s, opened on %s, is still in progress.\n"+
			"We apologize for the delay and will contact you as soon as work is finished.\n"+
			"\nBest regards,\nMechanic Shop",
		name, ticket.VehicleInfo, ticket.CreatedAt.Format("2006-01-02"),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
