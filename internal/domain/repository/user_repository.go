package repository

import "github.com/jcastro/stockflow-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
// Las búsquedas por token reciben el token ya hasheado (SHA-256 hex) y solo
// devuelven usuarios cuyo token no haya expirado.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	GetByPasswordResetToken(hashedToken string) (*entity.User, error)
	GetByEmailVerificationToken(hashedToken string) (*entity.User, error)
	// ExistsFullName indica si otro usuario distinto de excludeID ya usa ese nombre.
	ExistsFullName(fullName, excludeID string) (bool, error)
}
