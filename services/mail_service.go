package services

import (
	"errors"
	"fmt"
	"io"

	"stagestock/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// SendBOMReport emails a generated BOM PDF to the given recipients using
// the SMTP account from the environment configuration.
func SendBOMReport(recipients []string, productionName, filename string, pdfData []byte) error {
	if config.SMTPHost == "" || config.SMTPSender == "" {
		return errors.New("SMTP is not configured")
	}
	if len(recipients) == 0 {
		return errors.New("at least one recipient is required")
	}

	subject := "Bill of Materials - " + productionName
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Bill of Materials</h3>
				<p>Production: <strong>%s</strong></p>
				<p>The BOM report is attached as PDF.</p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, productionName)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdfData)
		return err
	}))

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		logrus.Errorf("Failed to send BOM email for %s: %v", productionName, err)
		return err
	}

	logrus.Infof("BOM email for %s sent to %v", productionName, recipients)
	return nil
}
