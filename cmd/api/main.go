package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vendalytics/store-analytics-api/infrastructure/database/postgres"
	"github.com/vendalytics/store-analytics-api/infrastructure/integrator/fxrates"
	"github.com/vendalytics/store-analytics-api/infrastructure/integrator/fxrates/fxratesclient"
	"github.com/vendalytics/store-analytics-api/infrastructure/repository"
	"github.com/vendalytics/store-analytics-api/internal/api"
	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/scheduler"
	"github.com/vendalytics/store-analytics-api/internal/usecases/analyzing"
	"github.com/vendalytics/store-analytics-api/internal/usecases/authenticating"
	"github.com/vendalytics/store-analytics-api/internal/usecases/converting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	orderAnalyticsRepo := repository.NewOrderAnalyticsRepository(pgConn)
	customerAnalyticsRepo := repository.NewCustomerAnalyticsRepository(pgConn)
	productAnalyticsRepo := repository.NewProductAnalyticsRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Provedor de taxas de câmbio com cache em memória. Desabilitado, a API
	// responde apenas nas moedas originais dos pedidos.
	var converter converting.Converter
	if cfg.FxRates.Enabled {
		fxRatesClient := fxratesclient.NewClient(&cfg.FxRates)
		rateProvider := fxrates.New(cfg, fxRatesClient)
		converter = converting.NewService(rateProvider)
	} else {
		logrus.Warn("Provedor de taxas de câmbio desabilitado, conversão de moedas indisponível")
	}

	analyticsService := analyzing.NewService(orderAnalyticsRepo, customerAnalyticsRepo, productAnalyticsRepo, converter)
	staleGuard := analyzing.NewStaleGuard()

	// Inicializa o agendador de pré-aquecimento do cache de taxas
	var ratesWarmupService *scheduler.RatesWarmupService
	if converter != nil {
		ratesWarmupService = scheduler.NewRatesWarmupService(converter, cfg)

		if err := ratesWarmupService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de pré-aquecimento de taxas de câmbio")
		} else {
			logrus.Info("Agendador de pré-aquecimento de taxas de câmbio iniciado com sucesso")
		}
	}

	server, err := api.New(
		cfg,
		analyticsService,
		staleGuard,
		authenticator,
		ratesWarmupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
