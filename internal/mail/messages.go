package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Notification email kinds accepted by the send-email endpoint.
const (
	TypeWelcome   = "welcome"
	TypeRejection = "rejection"
	TypeTest      = "test"
)

// GroupLinks carries the community invite links embedded in welcome mail.
type GroupLinks struct {
	Messenger string
	Instagram string
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<p>Hi {{.Name}},</p>
<p>Welcome to the IT Club! Your application has been approved and you are now an official member.</p>
{{if .Links.Messenger}}<p>Join our Messenger group: <a href="{{.Links.Messenger}}">{{.Links.Messenger}}</a></p>{{end}}
{{if .Links.Instagram}}<p>Follow the member group chat on Instagram: <a href="{{.Links.Instagram}}">{{.Links.Instagram}}</a></p>{{end}}
<p>See you at the next meetup!</p>`))

var rejectionTemplate = template.Must(template.New("rejection").Parse(`<p>Hi {{.Name}},</p>
<p>Thank you for applying to the IT Club. After reviewing your application we are unable to offer you a membership this semester.</p>
<p>We encourage you to apply again during the next recruitment window.</p>`))

type messageParams struct {
	Name  string
	Links GroupLinks
}

// WelcomeMessage renders the approval notification for a new member.
func WelcomeMessage(to, memberName string, links GroupLinks) (*Message, error) {
	body, err := renderTemplate(welcomeTemplate, messageParams{Name: memberName, Links: links})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      []string{to},
		Subject: "Welcome to the IT Club!",
		Body:    body,
		IsHTML:  true,
	}, nil
}

// RejectionMessage renders the rejection notification for an applicant.
func RejectionMessage(to, memberName string) (*Message, error) {
	body, err := renderTemplate(rejectionTemplate, messageParams{Name: memberName})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      []string{to},
		Subject: "Your IT Club application",
		Body:    body,
		IsHTML:  true,
	}, nil
}

// TestMessage renders the plain delivery-check mail used from the admin panel.
func TestMessage(to string) *Message {
	return &Message{
		To:      []string{to},
		Subject: "IT Club mail delivery test",
		Body:    "This is a test message from the IT Club admin panel. If you can read this, outbound mail is working.",
	}
}

func renderTemplate(tmpl *template.Template, params messageParams) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.String(), nil
}
