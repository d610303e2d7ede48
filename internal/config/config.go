package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	FxRates     FxRates     `mapstructure:",squash"`
	RatesWarmup RatesWarmup `mapstructure:",squash"`
	Analytics   Analytics   `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// FxRates configura o provedor externo de taxas de câmbio
type FxRates struct {
	URL            string        `mapstructure:"fxrates_url"`
	RequestTimeout time.Duration `mapstructure:"fxrates_request_timeout"`
	Enabled        bool          `mapstructure:"fxrates_enabled"`
}

// RatesWarmup configura o pré-aquecimento agendado do cache de taxas
type RatesWarmup struct {
	CronSchedule string `mapstructure:"rates_warmup_cron"`
	Enabled      bool   `mapstructure:"rates_warmup_enabled"`
	LookbackDays int    `mapstructure:"rates_warmup_lookback_days"`
}

// Analytics configura os limites da listagem paginada de pedidos
type Analytics struct {
	DefaultLimit int `mapstructure:"analytics_default_limit"`
	MaxLimit     int `mapstructure:"analytics_max_limit"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/storeanalytics")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("FXRATES_URL", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api")
	viper.SetDefault("FXRATES_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("FXRATES_ENABLED", true)

	// Defaults para o pré-aquecimento do cache de taxas
	viper.SetDefault("RATES_WARMUP_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("RATES_WARMUP_ENABLED", false)
	viper.SetDefault("RATES_WARMUP_LOOKBACK_DAYS", 7)

	viper.SetDefault("ANALYTICS_DEFAULT_LIMIT", 200)
	viper.SetDefault("ANALYTICS_MAX_LIMIT", 200)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
