package entity

import "time"

// User usuario de la API. Los tokens de reset/verificación se guardan
// hasheados (SHA-256); el token en claro solo viaja por correo.
type User struct {
	ID                       string
	Email                    string
	FullName                 string
	PasswordHash             string
	EmailVerified            bool
	EmailVerificationToken   *string
	EmailVerificationExpires *time.Time
	PasswordResetToken       *string
	PasswordResetExpires     *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
