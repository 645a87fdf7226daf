// Package mail implementa el envío de correos transaccionales
// (verificación de cuenta y reset de contraseña) vía SMTP.
package mail

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/jcastro/stockflow-api/internal/application/auth"
	"github.com/jcastro/stockflow-api/pkg/config"
	"github.com/rs/zerolog/log"
)

var _ auth.Notifier = (*SMTPMailer)(nil)

// SMTPMailer envía correos por SMTP con STARTTLS implícito del servidor.
// Si la configuración no tiene host, queda deshabilitado y los envíos
// solo se loguean (útil en desarrollo).
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el mailer desde la configuración.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if cfg.Host == "" {
		log.Warn().Msg("SMTP sin configurar: los correos solo se registrarán en el log")
	}
	return &SMTPMailer{cfg: cfg}
}

// Send envía un correo multipart (texto plano + HTML) al destinatario.
func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	if m.cfg.Host == "" {
		log.Info().Str("to", to).Str("subject", subject).Msg("correo omitido (SMTP deshabilitado)")
		return nil
	}

	msg := m.buildMessage(to, subject, textBody, htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var a smtp.Auth
	if m.cfg.User != "" {
		a = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, a, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}

const boundary = "stockflow-alt-boundary"

func (m *SMTPMailer) buildMessage(to, subject, textBody, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
