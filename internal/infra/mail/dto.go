package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

type NewLeadAlertData struct {
	LeadName string
	LeadType string
}
