package auth

// Notifier despacha correos transaccionales (verificación, reset de contraseña).
// El envío de verificación en signup es fire-and-forget: su fallo se loguea y
// nunca revierte la creación del usuario.
type Notifier interface {
	Send(to, subject, textBody, htmlBody string) error
}
