package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AutoFillReportEmailData holds data for the auto-fill summary email.
type AutoFillReportEmailData struct {
	Email    string
	RegionID string
	RanAt    time.Time
	Report   *AutoFillReport
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendAutoFillReport(ctx context.Context, data *AutoFillReportEmailData) error
}
