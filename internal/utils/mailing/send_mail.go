package mailing

import (
	"Recipebook-Backend/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

func SendMail(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return err
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", utils.GetConfig("SMTP_AUTH_EMAIL"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		utils.GetConfig("SMTP_HOST"),
		port,
		utils.GetConfig("SMTP_AUTH_EMAIL"),
		utils.GetConfig("SMTP_AUTH_PASSWORD"),
	)

	return dialer.DialAndSend(mailer)
}
