package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stockly-api/infrastructure/database/postgres"
	"github.com/vfg2006/stockly-api/infrastructure/migration"
	"github.com/vfg2006/stockly-api/infrastructure/repository"
	"github.com/vfg2006/stockly-api/internal/api"
	"github.com/vfg2006/stockly-api/internal/api/handler"
	"github.com/vfg2006/stockly-api/internal/config"
	"github.com/vfg2006/stockly-api/internal/scheduler"
	"github.com/vfg2006/stockly-api/internal/usecases/authenticating"
	"github.com/vfg2006/stockly-api/internal/usecases/catalog"
	"github.com/vfg2006/stockly-api/internal/usecases/ordering"
	"github.com/vfg2006/stockly-api/internal/usecases/reporting"
	"github.com/vfg2006/stockly-api/internal/usecases/revenue"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg)
	defer pgConn.Close()

	if cfg.Database.MigrationsEnabled {
		runMigrations(pgConn)
	}

	userRepo := repository.NewUserRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	clientRepo := repository.NewClientRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	revenueRepo := repository.NewMonthlyRevenueRepository(pgConn)

	ledger := revenue.NewLedger(revenueRepo)

	authenticator := authenticating.NewService(userRepo, cfg)
	catalogService := catalog.NewService(productRepo, clientRepo)
	orderService := ordering.NewService(cfg, pgConn, orderRepo, productRepo, clientRepo, ledger)
	reportService := reporting.NewService(productRepo, clientRepo, orderRepo, revenueRepo, ledger)

	logrus.WithFields(logrus.Fields{
		"pricing_policy":           cfg.Orders.PricingPolicy,
		"transaction_max_attempts": cfg.Orders.TransactionMaxAttempts,
	}).Info("Serviço de pedidos configurado")

	ledgerAuditService := scheduler.NewLedgerAuditService(reportService, ledger, cfg)
	if err := ledgerAuditService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de auditoria do faturamento")
	} else {
		logrus.Info("Agendador de auditoria do faturamento iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Orders:        orderService,
		Catalog:       catalogService,
		Reports:       reportService,
		CronJobs:      handler.CronJobServices{LedgerAudit: ledgerAuditService},
		Database:      pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, cfg *config.Config) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, cfg.Database, cfg.Orders.TransactionMaxAttempts)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

func runMigrations(conn *postgres.Connection) {
	migrator, err := migration.New(conn.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar migrações")
	}

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}
}
