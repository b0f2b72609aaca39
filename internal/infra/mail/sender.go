package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/droppurity/leadsboard/internal/entity"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendNewLeadAlert avisa a equipe por email que chegou lead novo.
func (s *EmailSender) SendNewLeadAlert(to, leadName string, leadType entity.LeadType) error {
	data := NewLeadAlertData{
		LeadName: leadName,
		LeadType: string(leadType),
	}

	tmplPath := filepath.Join("templates", "new_lead_alert.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read alert template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render alert template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-reply@droppurity.in")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New %s lead: %s", leadType, leadName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	return nil
}
