package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/analyzing"
	"github.com/vendalytics/store-analytics-api/pkg/apiErrors"
	"github.com/vendalytics/store-analytics-api/pkg/log"
)

// CustomersAnalytics retorna os KPIs de aquisição de clientes e a série de
// novos clientes por dia de primeiro pedido.
func CustomersAnalytics(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		params := r.URL.Query()

		preset := domain.RangePreset(params.Get("preset"))
		if preset == "" {
			preset = domain.PresetThisMonth
		}

		query := &analyzing.CustomersAnalyticsQuery{
			Preset: preset,
			From:   params.Get("from"),
			To:     params.Get("to"),
		}

		logger.WithFields(log.Fields{
			"preset": query.Preset,
		}).Info("customers-analytics: montando painel de clientes")

		response, err := service.CustomersAnalytics(r.Context(), query)
		if err != nil {
			handleAnalyticsError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("customers-analytics: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
