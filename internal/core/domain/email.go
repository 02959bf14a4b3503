package domain

// EmailMessage is one rendered email ready for the delivery provider.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
}
