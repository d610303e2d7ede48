package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/analyzing"
	"github.com/vendalytics/store-analytics-api/pkg/apiErrors"
	"github.com/vendalytics/store-analytics-api/pkg/log"
	"github.com/vendalytics/store-analytics-api/pkg/middleware"
)

// OrdersAnalytics monta o painel de analytics de pedidos de um período.
// Requisições sobrepostas do mesmo usuário são deduplicadas pelo guard:
// apenas a resposta da requisição mais recente é entregue.
func OrdersAnalytics(service analyzing.Analyzer, guard *analyzing.StaleGuard, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query, ok := parseAnalyticsQuery(w, r, cfg)
		if !ok {
			return
		}

		guardKey := analyticsGuardKey(r)
		seq := guard.Issue(guardKey)

		logger.WithFields(log.Fields{
			"preset":          query.Preset,
			"currency":        query.Currency,
			"limit":           query.Limit,
			"offset":          query.Offset,
			"country_summary": query.CountrySummary,
		}).Info("orders-analytics: montando painel de pedidos")

		response, err := service.OrdersAnalytics(r.Context(), query)
		if err != nil {
			handleAnalyticsError(w, logger, err)
			return
		}

		// Uma requisição mais nova do mesmo usuário torna esta resposta obsoleta
		if !guard.Current(guardKey, seq) {
			logger.WithFields(log.Fields{
				"key": guardKey,
			}).Info("orders-analytics: resposta obsoleta descartada")

			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("orders-analytics: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

func parseAnalyticsQuery(w http.ResponseWriter, r *http.Request, cfg *config.Config) (*analyzing.OrdersAnalyticsQuery, bool) {
	params := r.URL.Query()

	preset := domain.RangePreset(params.Get("preset"))
	if preset == "" {
		preset = domain.PresetThisMonth
	}

	currency, err := domain.ParseCurrency(params.Get("currency"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidCurrency, err.Error(), map[string]any{
			"allowed": domain.AllowedCurrencies,
		})
		return nil, false
	}

	limit := cfg.Analytics.DefaultLimit
	if raw := params.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPagination, "Parâmetro 'limit' inválido", nil)
			return nil, false
		}
	}

	// Limite fora da faixa é ajustado, não rejeitado
	if limit < 1 {
		limit = 1
	}
	if limit > cfg.Analytics.MaxLimit {
		limit = cfg.Analytics.MaxLimit
	}

	offset := 0
	if raw := params.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPagination, "Parâmetro 'offset' inválido", nil)
			return nil, false
		}
	}

	countrySummary := false
	if raw := params.Get("country_summary"); raw != "" {
		countrySummary, err = strconv.ParseBool(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro 'country_summary' inválido", nil)
			return nil, false
		}
	}

	return &analyzing.OrdersAnalyticsQuery{
		Preset:         preset,
		From:           params.Get("from"),
		To:             params.Get("to"),
		Currency:       currency,
		Limit:          limit,
		Offset:         offset,
		CountrySummary: countrySummary,
	}, true
}

// analyticsGuardKey identifica o cliente para fins de descarte de respostas
// obsoletas: o usuário autenticado quando houver, senão o endereço remoto
func analyticsGuardKey(r *http.Request) string {
	if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
		return fmt.Sprintf("user:%d", claims.UserID)
	}

	return "addr:" + r.RemoteAddr
}

func handleAnalyticsError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRangePreset):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRangePreset, err.Error(), map[string]any{
			"allowed": []domain.RangePreset{
				domain.PresetThisMonth,
				domain.PresetLastMonth,
				domain.PresetLast3Months,
				domain.PresetCustom,
			},
		})

	case errors.Is(err, domain.ErrMissingCustomBound),
		errors.Is(err, domain.ErrMalformedDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateBound, err.Error(), nil)

	default:
		logger.WithError(err).Error("orders-analytics: erro ao montar painel")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar analytics de pedidos", nil)
	}
}
