package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vendalytics/store-analytics-api/infrastructure/repository"
	errorcodes "github.com/vendalytics/store-analytics-api/internal/api/errors"
	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	CreateUser(user *domain.User) (*domain.User, error)
	UpdateUser(user *domain.UpdateUserRequest) error
	ListUser() ([]*domain.User, error)
	LoginUser(email, password string) (string, error)
	GetUserProfile(userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ChangePassword(userID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *Service) UpdateUser(user *domain.UpdateUserRequest) error {
	if user.ID == 0 {
		return NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "ID é obrigatório")
	}

	userDatabase, err := s.userRepo.GetUserByID(user.ID)
	if err != nil {
		return err
	}
	if userDatabase == nil {
		return NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, user.ID, "Usuário não encontrado")
	}

	if user.Name != nil {
		userDatabase.Name = *user.Name
	}

	if user.Lastname != nil {
		userDatabase.Lastname = *user.Lastname
	}

	if user.Email != nil {
		userDatabase.Email = handleEmail(*user.Email)
	}

	if user.Active != nil {
		userDatabase.Active = *user.Active
	}

	if user.RoleID != nil {
		userDatabase.RoleID = *user.RoleID
	}

	if user.Deleted != nil {
		now := time.Now()
		userDatabase.Deleted = *user.Deleted
		userDatabase.DeletedAt = &now
	}

	return s.userRepo.UpdateUser(userDatabase)
}

func (s *Service) CreateUser(user *domain.User) (*domain.User, error) {
	if user.Email == "" || user.Name == "" || user.Lastname == "" || user.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "Email, nome, sobrenome e senha são obrigatórios")
	}

	user.Email = handleEmail(user.Email)

	userDatabase, err := s.userRepo.GetUserByEmail(user.Email)
	if err != nil {
		return nil, NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if userDatabase != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, errorcodes.ErrUserAlreadyExists, "Já existe usuário com este email")
	}

	if err := s.ValidatePasswordStrength(user.PasswordHash); err != nil {
		return nil, NewAuthError(ErrWeakPassword, errorcodes.ErrMissingRequiredData, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, errorcodes.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	user.Active = true

	created, err := s.userRepo.CreateUser(user)
	if err != nil {
		return nil, NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	created.PasswordHash = ""
	return created, nil
}

func (s *Service) ListUser() ([]*domain.User, error) {
	return s.userRepo.ListUser()
}

func (s *Service) LoginUser(email, password string) (string, error) {
	// Validação de entrada
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, errorcodes.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	// Verificar se o usuário existe
	if user == nil {
		return "", NewAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, "Usuário não encontrado")
	}

	// Verificar se o usuário está ativo
	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, errorcodes.ErrUserDisabled, user.ID, "Conta desativada")
	}

	// Verificar senha
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, errorcodes.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	// Gerar token JWT
	token, err := generateJWT(user, s.cfg.SecretKey)
	if err != nil {
		return "", NewAuthError(err, errorcodes.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetUserProfile(userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func generateJWT(user *domain.User, secretKey string) (string, error) {
	claims := domain.Claims{
		UserID:       user.ID,
		UserName:     user.Name,
		UserLastname: user.Lastname,
		UserEmail:    user.Email,
		UserActive:   user.Active,
		UserRoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidatePasswordStrength verifica se a senha atende aos requisitos de segurança
// Senha deve conter pelo menos 8 caracteres, incluindo maiúsculas, minúsculas, números e caracteres especiais
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("a senha deve conter pelo menos 8 caracteres")
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	const (
		lowerChars   = "abcdefghijklmnopqrstuvwxyz"
		upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		numberChars  = "0123456789"
		specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
	)

	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return errors.New("a senha deve conter pelo menos um número")
	}
	if !hasSpecial {
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword permite que um usuário altere sua própria senha
// Verifica se a senha atual está correta e se a nova senha atende aos requisitos de segurança
func (s *Service) ChangePassword(userID int, currentPassword, newPassword string) error {
	// Obter o usuário pelo ID
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}

	if user == nil {
		return NewUserAuthError(ErrUserNotFound, errorcodes.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	// Verificar se a senha atual está correta
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, errorcodes.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrPasswordMismatch, errorcodes.ErrMissingRequiredData, userID, "Nova senha deve ser diferente da atual")
	}

	// Validar se a nova senha atende aos requisitos de segurança
	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	// Gerar hash da nova senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Atualizar a senha do usuário
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.UpdateUser(user)
}

func handleEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
