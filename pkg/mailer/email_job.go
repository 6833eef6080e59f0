package mailer

// EmailJob is the JSON payload put on the notification queue. The API
// publishes it fire-and-forget; the email worker consumes and delivers it.
type EmailJob struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}
