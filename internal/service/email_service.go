package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional emails.
type EmailService interface {
	SendReportSummary(ctx context.Context, toEmail, weekID, html string) error
}

// NoopEmailService is used when report emails are disabled.
type NoopEmailService struct{}

func (s *NoopEmailService) SendReportSummary(ctx context.Context, toEmail, weekID, html string) error {
	log.Printf("[EmailService] noop send report summary to=%s week=%s", toEmail, weekID)
	return nil
}

// ResendEmailService sends emails via Resend REST API.
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendReportSummary отправляет преподавателю сводку посещаемости за неделю
func (s *ResendEmailService) SendReportSummary(ctx context.Context, toEmail, weekID, html string) error {
	if toEmail == "" || html == "" {
		return fmt.Errorf("toEmail and html are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Attendance report for week %s", weekID),
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		log.Printf("[EmailService] Ошибка отправки отчёта to=%s week=%s: %v", toEmail, weekID, err)
		return fmt.Errorf("failed to send report email: %w", err)
	}

	return nil
}
