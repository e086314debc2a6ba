package request

// MailEvent is the payload published to the notification topic. The
// notification service owns actual SMTP delivery.
type MailEvent struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
