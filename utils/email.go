package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"time"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost     = os.Getenv("SMTP_HOST")
	smtpPort     = os.Getenv("SMTP_PORT")
	smtpUser     = os.Getenv("SMTP_USER")
	smtpPassword = os.Getenv("SMTP_PASSWORD")
	smtpFrom     = os.Getenv("SMTP_FROM")
	frontendURL  = os.Getenv("FRONT_ORIGIN")
	smtpTimeout  = 10 * time.Second
)

// sendEmail delivers one plain-text message over SMTP with STARTTLS.
// When SMTP is not configured it logs the message and returns nil so
// flows that email as a side effect keep working in dev.
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUser == "" || smtpPassword == "" {
		fmt.Printf("⚠️ SMTP not configured, skipping email to %s (%s)\n", to, subject)
		return nil
	}

	from := smtpFrom
	if from == "" {
		from = smtpUser
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		fmt.Printf("⚠️ QUIT command error (non-critical): %v\n", err)
	}
	return nil
}

// ======================
// Password Reset
// ======================
func SendResetLink(toEmail string, resetToken string) error {
	baseURL := frontendURL
	if baseURL == "" {
		baseURL = "http://localhost:5173"
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", baseURL, resetToken)
	subject := "Recuperación de contraseña RENAPP"
	body := fmt.Sprintf("Para restablecer su contraseña ingrese aquí: %s\n\nEl enlace expira en 15 minutos. Si usted no solicitó este cambio, ignore este correo.", resetURL)

	return sendEmail(toEmail, subject, body)
}

// ======================
// Review decision emails
// ======================
func SendApprovalEmail(toEmail, scope, title string) error {
	subject := fmt.Sprintf("Su registro de %s fue aprobado", scope)
	body := fmt.Sprintf("Le informamos que su registro \"%s\" fue APROBADO por el equipo revisor del RENAPP.\nPuede consultar el acta en su bandeja de notificaciones.", title)
	return sendEmail(toEmail, subject, body)
}

func SendObservationEmail(toEmail, scope, title, comment string) error {
	subject := fmt.Sprintf("Su registro de %s tiene observaciones", scope)
	body := fmt.Sprintf("Su registro \"%s\" recibió observaciones del equipo revisor:\n\n%s\n\nCorrija la información y vuelva a enviar su solicitud.", title, comment)
	return sendEmail(toEmail, subject, body)
}
