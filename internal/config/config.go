package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Políticas de preço usadas ao concluir um pedido
const (
	PricingPolicyLive   = "live"   // relê o preço atual do catálogo
	PricingPolicyFrozen = "frozen" // usa o preço capturado no item do pedido
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Orders      Orders      `mapstructure:",squash"`
	LedgerAudit LedgerAudit `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN               string `mapstructure:"-"`
	Driver            string `mapstructure:"database_driver"`
	Password          string `mapstructure:"database_password"`
	URL               string `mapstructure:"database_url"`
	User              string `mapstructure:"database_user"`
	SSLMode           string `mapstructure:"database_sslmode"`
	MigrationsEnabled bool   `mapstructure:"migrations_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	OperatorIDs []int64       `mapstructure:"operator_ids"` // donos autorizados a operar as cron jobs globais
}

type Orders struct {
	PricingPolicy          string `mapstructure:"pricing_policy"`
	TransactionMaxAttempts int    `mapstructure:"transaction_max_attempts"`
}

type LedgerAudit struct {
	CronSchedule string `mapstructure:"ledger_audit_cron"`
	Enabled      bool   `mapstructure:"ledger_audit_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/stockly")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("MIGRATIONS_ENABLED", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("TOKEN_TTL", "720h") // 30 dias
	viper.SetDefault("OPERATOR_IDS", "")

	viper.SetDefault("PRICING_POLICY", PricingPolicyLive)
	viper.SetDefault("TRANSACTION_MAX_ATTEMPTS", 2) // uma tentativa extra em conflito de serialização

	viper.SetDefault("LEDGER_AUDIT_CRON", "30 2 * * *") // Todos os dias às 2h30 da manhã
	viper.SetDefault("LEDGER_AUDIT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

// Validate normaliza e confere os valores que alteram regras de negócio
func (c *Config) Validate() error {
	c.Orders.PricingPolicy = strings.ToLower(strings.TrimSpace(c.Orders.PricingPolicy))
	switch c.Orders.PricingPolicy {
	case "":
		c.Orders.PricingPolicy = PricingPolicyLive
	case PricingPolicyLive, PricingPolicyFrozen:
	default:
		return fmt.Errorf("config: PRICING_POLICY inválida: %q (use %q ou %q)", c.Orders.PricingPolicy, PricingPolicyLive, PricingPolicyFrozen)
	}

	if c.Orders.TransactionMaxAttempts < 1 {
		c.Orders.TransactionMaxAttempts = 1
	}

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 30 * 24 * time.Hour
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
