package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/analyzing"
	"github.com/vendalytics/store-analytics-api/pkg/apiErrors"
	"github.com/vendalytics/store-analytics-api/pkg/log"
)

// defaultTopVariantsLimit limita o ranking quando a requisição não informa 'limit'
const defaultTopVariantsLimit = 10

// ProductsAnalytics retorna o ranking de variantes mais vendidas do período
func ProductsAnalytics(service analyzing.Analyzer, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		params := r.URL.Query()

		preset := domain.RangePreset(params.Get("preset"))
		if preset == "" {
			preset = domain.PresetThisMonth
		}

		limit := defaultTopVariantsLimit
		if raw := params.Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPagination, "Parâmetro 'limit' inválido", nil)
				return
			}
			limit = parsed
		}

		// Limite fora da faixa é ajustado, não rejeitado
		if limit < 1 {
			limit = 1
		}
		if limit > cfg.Analytics.MaxLimit {
			limit = cfg.Analytics.MaxLimit
		}

		query := &analyzing.ProductsAnalyticsQuery{
			Preset: preset,
			From:   params.Get("from"),
			To:     params.Get("to"),
			Limit:  limit,
		}

		logger.WithFields(log.Fields{
			"preset": query.Preset,
			"limit":  query.Limit,
		}).Info("products-analytics: montando ranking de variantes")

		response, err := service.ProductsAnalytics(r.Context(), query)
		if err != nil {
			handleAnalyticsError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("products-analytics: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
