package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/scheduler"
	"github.com/vendalytics/store-analytics-api/pkg/apiErrors"
	"github.com/vendalytics/store-analytics-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRatesWarmup = "rates-warmup"
	CronJobTypeAll         = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	RatesWarmupService *scheduler.RatesWarmupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeRatesWarmup:
			// Executar o aquecimento do cache de taxas de câmbio
			if services.RatesWarmupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de aquecimento de taxas não disponível", nil)
				return
			}
			services.RatesWarmupService.TriggerManualSync()

		case CronJobTypeAll:
			// Executar todas as sincronizações disponíveis
			if services.RatesWarmupService != nil {
				services.RatesWarmupService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: rates-warmup, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{}
		if services.RatesWarmupService != nil {
			status["rates-warmup"] = services.RatesWarmupService.GetStatus()
		}

		json.NewEncoder(w).Encode(status)
	}
}
