package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
	"github.com/jcastro/stockflow-api/pkg/jwt"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para la generación del par access/refresh.
type JWTConfig struct {
	AccessSecret      string
	RefreshSecret     string
	AccessExpMinutes  int
	RefreshExpMinutes int
	Issuer            string
}

// UseCase casos de uso de autenticación: signup, login, refresh, verificación
// de email y ciclo de reset de contraseña.
type UseCase struct {
	userRepo    repository.UserRepository
	notifier    Notifier
	jwtCfg      JWTConfig
	frontendURL string
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, notifier Notifier, jwtCfg JWTConfig, frontendURL string) *UseCase {
	return &UseCase{userRepo: userRepo, notifier: notifier, jwtCfg: jwtCfg, frontendURL: frontendURL}
}

// TokenPair access y refresh firmados con secretos distintos.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (uc *UseCase) generateTokens(userID string) (TokenPair, error) {
	access, err := jwt.Generate(uc.jwtCfg.AccessSecret, userID, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.RefreshSecret, userID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Signup crea el usuario (bcrypt + email único) y dispara el correo de
// verificación en segundo plano. El fallo del correo es suave: se loguea y el
// usuario queda creado igualmente.
func (uc *UseCase) Signup(in dto.SignupRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || len(in.FullName) < 3 {
		return nil, domain.ErrInvalidInput
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Fire-and-forget: la verificación no bloquea ni revierte el signup.
	go func(u entity.User) {
		if err := uc.sendVerificationEmail(&u); err != nil {
			log.Error().Err(err).Str("user_id", u.ID).Msg("envío de correo de verificación falló")
		}
	}(*user)

	tokens, err := uc.generateTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login valida credenciales y devuelve el par de tokens. Credenciales malas
// devuelven siempre el mismo error, sin distinguir email de contraseña.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	tokens, err := uc.generateTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh emite un access token nuevo a partir de un refresh token válido.
func (uc *UseCase) Refresh(refreshToken string) (string, error) {
	userID, err := jwt.Parse(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	return jwt.Generate(uc.jwtCfg.AccessSecret, userID, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
}

// GetMe devuelve los datos públicos del usuario autenticado.
func (uc *UseCase) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ChangeFullName cambia el nombre si ningún otro usuario lo usa ya.
func (uc *UseCase) ChangeFullName(userID string, in dto.ChangeFullNameRequest) (*dto.UserResponse, error) {
	if len(in.FullName) < 3 {
		return nil, domain.ErrInvalidInput
	}
	taken, err := uc.userRepo.ExistsFullName(in.FullName, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrConflict
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.FullName = in.FullName
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword cambia la contraseña previa verificación de la actual.
func (uc *UseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if err := ValidatePassword(in.NewPassword); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ValidatePassword exige mínimo 8 caracteres con mayúscula, minúscula, dígito
// y carácter especial.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.ErrInvalidInput
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return domain.ErrInvalidInput
	}
	return nil
}

// randomToken devuelve (token en claro, hash SHA-256 hex para almacenar).
func randomToken() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	token := hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(token))
	return token, hex.EncodeToString(sum[:]), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// sendVerificationEmail genera el token (1 hora), lo guarda hasheado y envía el link.
func (uc *UseCase) sendVerificationEmail(user *entity.User) error {
	token, hashed, err := randomToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(time.Hour)
	user.EmailVerificationToken = &hashed
	user.EmailVerificationExpires = &expires
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", uc.frontendURL, token)
	return uc.notifier.Send(
		user.Email,
		"Verifica tu dirección de correo",
		"Gracias por registrarte. Verifica tu correo en: "+verificationURL,
		fmt.Sprintf(`<p>Gracias por registrarte.</p><p>Haz clic para verificar tu correo:</p><a href="%s">%s</a>`, verificationURL, verificationURL),
	)
}

// VerifyEmail marca el email como verificado si el token es válido y no expiró.
func (uc *UseCase) VerifyEmail(token string) error {
	if token == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmailVerificationToken(hashToken(token))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidToken
	}
	user.EmailVerified = true
	user.EmailVerificationToken = nil
	user.EmailVerificationExpires = nil
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ForgotPassword genera un token de reset (10 min) y lo envía por correo.
// La respuesta es siempre opaca para no revelar si el email existe. Si el
// correo falla, el token se limpia de la BD para permitir reintentos y el
// error sí se propaga.
func (uc *UseCase) ForgotPassword(in dto.ForgotPasswordRequest) error {
	if in.Email == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil // opaco: mismo resultado que el caso exitoso
	}

	token, hashed, err := randomToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(10 * time.Minute)
	user.PasswordResetToken = &hashed
	user.PasswordResetExpires = &expires
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.frontendURL, token)
	err = uc.notifier.Send(
		user.Email,
		"Tu link de restablecimiento de contraseña (válido 10 min)",
		"¿Olvidaste tu contraseña? Restablécela en: "+resetURL,
		fmt.Sprintf(`<p>¿Olvidaste tu contraseña? Haz clic para restablecerla.</p><a href="%s">%s</a><p>El link es válido por 10 minutos.</p>`, resetURL, resetURL),
	)
	if err != nil {
		// Limpiar el token para que el usuario pueda reintentar.
		user.PasswordResetToken = nil
		user.PasswordResetExpires = nil
		if uerr := uc.userRepo.Update(user); uerr != nil {
			log.Error().Err(uerr).Str("user_id", user.ID).Msg("no se pudo limpiar el token de reset")
		}
		return fmt.Errorf("enviar correo de reset: %w", err)
	}
	return nil
}

// ResetPassword aplica la nueva contraseña si el token es válido y no expiró.
func (uc *UseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	if in.Token == "" {
		return domain.ErrInvalidInput
	}
	if err := ValidatePassword(in.NewPassword); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByPasswordResetToken(hashToken(in.Token))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		EmailVerified: u.EmailVerified,
	}
}
