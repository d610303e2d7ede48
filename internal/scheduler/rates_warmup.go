package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/domain"
	"github.com/vendalytics/store-analytics-api/internal/usecases/converting"
)

// RatesWarmupConfig representa a configuração do agendador de pré-aquecimento de taxas
type RatesWarmupConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
}

// RatesWarmupService agenda o pré-aquecimento do cache de taxas de câmbio:
// busca antecipadamente as taxas dos últimos dias para todos os pares de
// moedas suportados, para que as requisições do painel não paguem a latência
// do provedor externo.
type RatesWarmupService struct {
	scheduler           *gocron.Scheduler
	config              RatesWarmupConfig
	converter           converting.Converter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewRatesWarmupService cria uma nova instância do serviço de pré-aquecimento de taxas
func NewRatesWarmupService(
	converter converting.Converter,
	appConfig *config.Config,
) *RatesWarmupService {
	// Criar a configuração com base na config global
	warmupConfig := RatesWarmupConfig{
		CronSchedule: appConfig.RatesWarmup.CronSchedule,
		LookbackDays: appConfig.RatesWarmup.LookbackDays,
		Enabled:      appConfig.RatesWarmup.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmupConfig.CronSchedule,
		"lookback_days": warmupConfig.LookbackDays,
		"enabled":       warmupConfig.Enabled,
	}).Info("Configuração do agendador de pré-aquecimento de taxas carregada")

	return &RatesWarmupService{
		scheduler:   scheduler,
		config:      warmupConfig,
		converter:   converter,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *RatesWarmupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Pré-aquecimento de taxas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de pré-aquecimento de taxas")

	// Agendar o pré-aquecimento
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.warmupAllRates(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar pré-aquecimento de taxas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de pré-aquecimento de taxas")
		s.scheduler.Stop()
	}()

	return nil
}

// warmupAllRates busca as taxas de todos os pares suportados no período de lookback
func (s *RatesWarmupService) warmupAllRates(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Pré-aquecimento de taxas já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	dates := s.getDatesToProcess()
	pairs := currencyPairs()

	logrus.WithFields(logrus.Fields{
		"days":  len(dates),
		"pairs": len(pairs),
	}).Info("Iniciando pré-aquecimento do cache de taxas")

	// O conversor deduplica e armazena cada taxa buscada; converter uma
	// unidade é suficiente para popular o cache
	one := decimal.NewFromInt(1)
	failures := 0

	for _, date := range dates {
		var wg sync.WaitGroup

		for _, pair := range pairs {
			wg.Add(1)

			go func(from, to domain.CurrencyCode, at time.Time) {
				defer wg.Done()

				if _, err := s.converter.Convert(ctx, one, from, to, at); err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"from": from,
						"to":   to,
						"date": at.Format(time.DateOnly),
					}).Warn("Falha ao pré-aquecer taxa")

					s.syncMutex.Lock()
					failures++
					s.syncMutex.Unlock()
				}
			}(pair[0], pair[1], date)
		}

		wg.Wait()
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"days":     len(dates),
		"pairs":    len(pairs),
		"failures": failures,
	}).Info("Pré-aquecimento do cache de taxas concluído")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *RatesWarmupService) getDatesToProcess() []time.Time {
	dates := make([]time.Time, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i) // Começar de hoje e ir para trás
	}
	return dates
}

// currencyPairs enumera os pares ordenados de moedas suportadas, sem o sentinela
func currencyPairs() [][2]domain.CurrencyCode {
	pairs := make([][2]domain.CurrencyCode, 0)
	for _, from := range domain.AllowedCurrencies {
		if from.IsOriginal() {
			continue
		}

		for _, to := range domain.AllowedCurrencies {
			if to.IsOriginal() || from == to {
				continue
			}

			pairs = append(pairs, [2]domain.CurrencyCode{from, to})
		}
	}

	return pairs
}

// TriggerManualSync inicia manualmente um pré-aquecimento de taxas
func (s *RatesWarmupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Pré-aquecimento de taxas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando pré-aquecimento manual de taxas")
	go s.warmupAllRates(context.Background())
}

// GetStatus retorna o status atual do agendador. Os carimbos de tempo são
// escritos pela goroutine de pré-aquecimento, então a leitura segura o mutex.
func (s *RatesWarmupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"warmup_enabled":           s.config.Enabled,
		"warmup_cron":              s.config.CronSchedule,
		"warmup_lookback_days":     s.config.LookbackDays,
		"last_warmup_started_at":   startedAt,
		"last_warmup_completed_at": completedAt,
	}
}
