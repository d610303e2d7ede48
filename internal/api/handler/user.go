package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/authenticating"
	"github.com/vendalytics/store-analytics-api/pkg/apiErrors"
	"github.com/vendalytics/store-analytics-api/pkg/log"
	"github.com/vendalytics/store-analytics-api/pkg/middleware"
)

const adminRoleID = 1

// userIDFromPath extrai e valida o parâmetro :id da rota
func userIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário não fornecido", nil)
		return 0, false
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
		return 0, false
	}

	return id, true
}

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("erro ao codificar resposta")
	}
}

// GetUser retorna o perfil de um usuário por ID
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, ok := userIDFromPath(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(id)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{"user_id": id}).Error("erro ao buscar usuário")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar usuário", nil)
			return
		}

		if user == nil {
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
			return
		}

		writeJSON(w, logger, http.StatusOK, user)
	}
}

// CreateUser registra um novo usuário
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - CreateUser")

		var user *domain.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			logger.WithError(err).Error("corpo de requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if user.Name == "" || user.Email == "" || user.PasswordHash == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios", nil)
			return
		}

		created, err := service.CreateUser(user)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{"email": user.Email}).Error("erro ao criar usuário")
			writeCreateUserError(w, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, created)
	}
}

func writeCreateUserError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError

	switch {
	case errors.Is(err, authenticating.ErrUserAlreadyExists):
		apiErrors.WriteError(w, apiErrors.ErrUserAlreadyExists, "Email já cadastrado", nil)

	case errors.Is(err, authenticating.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário", nil)
	}
}

// ListUsers lista todos os usuários cadastrados. A rota já exige admin, mas a
// checagem se repete aqui para não depender da ordem dos middlewares.
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || claims.UserRoleID != adminRoleID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem listar todos os usuários", nil)
			return
		}

		users, err := service.ListUser()
		if err != nil {
			logger.WithError(err).Error("erro ao listar usuários")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar usuários", nil)
			return
		}

		writeJSON(w, logger, http.StatusOK, users)
	}
}

// UpdateUser atualiza o perfil de um usuário. Cada usuário edita apenas o
// próprio perfil; administradores editam qualquer um e são os únicos que
// alteram papel.
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - UpdateUser")

		id, ok := userIDFromPath(w, r)
		if !ok {
			return
		}

		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || (claims.UserID != id && claims.UserRoleID != adminRoleID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para editar este usuário", nil)
			return
		}

		var updateReq domain.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
			logger.WithError(err).Error("corpo de requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		updateReq.ID = id

		if updateReq.RoleID != nil && claims.UserRoleID != adminRoleID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem alterar o tipo de usuário", nil)
			return
		}

		if err := service.UpdateUser(&updateReq); err != nil {
			logger.WithError(err).WithFields(log.Fields{"user_id": id}).Error("erro ao atualizar usuário")

			if err.Error() == "email already exists" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Email já cadastrado", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar usuário", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}
