package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends the weekly summary via Amazon SES. When no sender
// address is configured the service is created disabled and every send
// becomes a logged no-op.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklySummary emails the aggregated totals for one week
func (s *EmailService) SendWeeklySummary(ctx context.Context, toEmail, orgName string, view *DashboardView) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly summary to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("[%s] %s 주간 보고", orgName, view.Week.Sunday)

	var rows strings.Builder
	for _, entry := range view.Entries {
		attended := "-"
		if r := entry.CurrentWeekReport; r != nil {
			attended = fmt.Sprintf("%d", r.AttendedLeadersCount+r.AttendedGraduatesCount+
				r.AttendedStudentsCount+r.AttendedFreshmenCount+r.AttendedOthersCount)
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			entry.Yohoe.Name, entry.Yohoe.Shepherd, attended)
	}

	totals := view.CurrentTotals
	htmlBody := fmt.Sprintf(`
<html>
<body style="font-family: sans-serif; color: #333;">
	<h2>%s</h2>
	<p>%s ~ %s · 주제: %s</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>요회</th><th>목자</th><th>참석</th></tr>
		%s
	</table>
	<p>
		합계 <strong>%d</strong> ·
		1:1 <strong>%d</strong> ·
		리더 참석 <strong>%d</strong> ·
		양 <strong>%d</strong>
	</p>
</body>
</html>`,
		orgName, view.Week.Start, view.Week.End, view.Theme, rows.String(),
		totals.Total, totals.OneToOne, totals.AttendedLeaders, totals.Yang)

	textBody := fmt.Sprintf("%s %s ~ %s\n합계 %d, 1:1 %d, 리더 참석 %d, 양 %d\n",
		orgName, view.Week.Start, view.Week.End,
		totals.Total, totals.OneToOne, totals.AttendedLeaders, totals.Yang)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Weekly summary sent to %s", toEmail)
	return nil
}
