package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"procura/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendStatusChangeEmail(ctx context.Context, msg port.StatusChangeEmail) error {
	requestURL := fmt.Sprintf("%s/requests/%s", s.frontendURL, msg.RequestID)

	subject := fmt.Sprintf("Your request %q is now %s", msg.RequestTitle, msg.ToStatus)
	htmlBody := buildStatusChangeHTML(msg, requestURL)
	textBody := buildStatusChangeText(msg, requestURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildStatusChangeText(msg port.StatusChangeEmail, requestURL string) string {
	body := fmt.Sprintf("Hi %s,\n\nYour procurement request %q changed status from %s to %s.",
		msg.ToName, msg.RequestTitle, msg.FromStatus, msg.ToStatus)
	if msg.Comment != "" {
		body += fmt.Sprintf("\n\nComment from procurement:\n%s", msg.Comment)
	}
	body += fmt.Sprintf("\n\nView your request:\n%s\n\nPROCURA Team", requestURL)
	return body
}

func buildStatusChangeHTML(msg port.StatusChangeEmail, requestURL string) string {
	comment := ""
	if msg.Comment != "" {
		comment = fmt.Sprintf(`<p><strong>Comment from procurement:</strong></p>
  <p style="background: #f5f5f5; padding: 12px; border-radius: 6px;">%s</p>`, msg.Comment)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Request status update</h2>
  <p>Hi %s,</p>
  <p>Your procurement request <strong>%s</strong> changed status from <strong>%s</strong> to <strong>%s</strong>.</p>
  %s
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Request</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">PROCURA - Procurement Request Platform</p>
</body>
</html>`, msg.ToName, msg.RequestTitle, msg.FromStatus, msg.ToStatus, comment, requestURL)
}
