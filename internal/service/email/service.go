package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"holidaily/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendMentionEmail(ctx context.Context, toEmail, recipientName, authorName, where, content string) error
	SendLikeEmail(ctx context.Context, toEmail, recipientName, likerName, content string) error
	SendHolidayApprovedEmail(ctx context.Context, toEmail, recipientName, holidayName string, reward int) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

type envelope struct {
	Title           string
	Name            string
	Link            string
	UnsubscribeLink string
}

func (s *service) envelope(title, name string) envelope {
	return envelope{
		Title:           title,
		Name:            name,
		Link:            fmt.Sprintf("https://%s", s.config.Domain),
		UnsubscribeLink: fmt.Sprintf("https://%s/unsubscribe", s.config.Domain),
	}
}

// Render executes a named template inside the shared layout.
func Render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Holidaily <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *service) SendMentionEmail(ctx context.Context, toEmail, recipientName, authorName, where, content string) error {
	data := struct {
		envelope
		AuthorName string
		Where      string
		Content    string
	}{
		envelope:   s.envelope("You were mentioned", recipientName),
		AuthorName: authorName,
		Where:      where,
		Content:    content,
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s mentioned you on %s", authorName, where), "mention.html", data)
}

func (s *service) SendLikeEmail(ctx context.Context, toEmail, recipientName, likerName, content string) error {
	data := struct {
		envelope
		LikerName string
		Content   string
	}{
		envelope:  s.envelope("Someone liked your post", recipientName),
		LikerName: likerName,
		Content:   content,
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s liked your post", likerName), "like.html", data)
}

func (s *service) SendHolidayApprovedEmail(ctx context.Context, toEmail, recipientName, holidayName string, reward int) error {
	data := struct {
		envelope
		HolidayName string
		Reward      int
	}{
		envelope:    s.envelope("Your holiday was approved!", recipientName),
		HolidayName: holidayName,
		Reward:      reward,
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s was approved!", holidayName), "holiday_approved.html", data)
}
