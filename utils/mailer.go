package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/marcdejesus/fitness/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// InitSES sets up the SES client. Call once at startup; without AWS_REGION
// the mailer stays disabled and sends become log lines (local development).
func InitSES() {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		logger.Warn("AWS_REGION not set; outgoing email disabled")
		return
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		logger.Fatal("AWS config load failed: " + err.Error())
	}
	sesClient = ses.NewFromConfig(cfg)
}

func sendEmail(to, subject, body string) error {
	if sesClient == nil {
		logger.Info("mailer disabled, dropping email to " + to + ": " + subject)
		return nil
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(os.Getenv("MAIL_FROM")),
	}
	_, err := sesClient.SendEmail(context.TODO(), input)
	return err
}

func SendResetEmail(to, token string) error {
	body := fmt.Sprintf(
		"We received a request to reset your password.\n\nReset code: %s\n\nIf you did not request this, you can ignore this email.",
		token,
	)
	return sendEmail(to, "Password reset", body)
}
