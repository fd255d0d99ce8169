package services

import (
	"context"
	"fmt"
	"log/slog"

	"networkingbude/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendAutoFillReport sends the auto-fill summary using the "autofill_report" template.
func (s *emailService) SendAutoFillReport(ctx context.Context, data *domain.AutoFillReportEmailData) error {
	if data == nil || data.Report == nil {
		return fmt.Errorf("auto-fill report data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("autofill_report", data)
	if err != nil {
		return fmt.Errorf("failed to render autofill_report template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send auto-fill report email: %w", err)
	}
	s.logger.InfoContext(ctx, "auto-fill report sent", "to", data.Email, "region", data.RegionID)
	return nil
}
