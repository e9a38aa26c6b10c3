package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/apnaparivar/familytree-backend/internal/config"
	"github.com/apnaparivar/familytree-backend/internal/logger"
)

// sesMailer sends onboarding notification emails through Amazon SES. When no
// from-address is configured the mailer is constructed disabled and every
// send becomes a logged no-op.
type sesMailer struct {
	client   *sesv2.Client
	from     string
	fromName string
	enabled  bool
	logger   *logger.Logger
}

// NewMailer constructs a Mailer from the mail config. A missing from-address
// disables sending without failing startup; AWS credentials and region come
// from the default credential chain.
func NewMailer(ctx context.Context, cfg config.Mail, logger *logger.Logger) (Mailer, error) {
	if cfg.FromAddress == "" {
		logger.Info().Msg("mailer disabled: no from-address configured")
		return &sesMailer{enabled: false, logger: logger}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	logger.Info().Str("from", cfg.FromAddress).Str("region", cfg.Region).Msg("mailer enabled")

	return &sesMailer{
		client:   sesv2.NewFromConfig(awsCfg),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		enabled:  true,
		logger:   logger,
	}, nil
}

// SendApprovalNotice tells a prospective admin their request was approved.
func (m *sesMailer) SendApprovalNotice(ctx context.Context, to, familyName string) error {
	subject := "Your family admin request has been approved"
	body := fmt.Sprintf(
		"Hello,\n\nYour request to administer the family %q has been approved. "+
			"You can now log in with your email and password.\n\n"+
			"This is an automated email. Please do not reply.\n",
		familyName,
	)

	return m.send(ctx, to, subject, body)
}

// SendRejectionNotice tells a prospective admin their request was rejected,
// with the reviewer's reason.
func (m *sesMailer) SendRejectionNotice(ctx context.Context, to, familyName, reason string) error {
	subject := "Your family admin request has been rejected"
	body := fmt.Sprintf(
		"Hello,\n\nYour request to administer the family %q has been rejected.\n\n"+
			"Reason: %s\n\n"+
			"This is an automated email. Please do not reply.\n",
		familyName, reason,
	)

	return m.send(ctx, to, subject, body)
}

func (m *sesMailer) send(ctx context.Context, to, subject, body string) error {
	if !m.enabled {
		m.logger.Debug().Str("to", to).Str("subject", subject).Msg("mailer disabled, skipping send")
		return nil
	}

	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}

	m.logger.Info().Str("to", to).Str("subject", subject).Msg("notification email sent")
	return nil
}
