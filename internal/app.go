// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "goldenia-ledger/internal/api"
	"goldenia-ledger/internal/api/handler"
	"goldenia-ledger/internal/config"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/internal/repository/postgres"
	"goldenia-ledger/internal/service"
	"goldenia-ledger/internal/util"
	"goldenia-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	TradeRepository       repository.TradeRepository
	AssetPriceRepository  repository.AssetPriceRepository

	// Services
	WalletService  service.WalletService
	TradingService service.TradingService
	QueryService   service.QueryService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.WalletRepository = postgres.NewWalletRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.TradeRepository = postgres.NewTradeRepository()
	app.AssetPriceRepository = postgres.NewAssetPriceRepository()
	app.Logger.Info("Repositories initialized.")

	app.WalletService = service.NewWalletService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor for non-transactional reads
		app.WalletRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.TradingService = service.NewTradingService(
		app.DB,
		app.DB,
		app.WalletRepository,
		app.TransactionRepository,
		app.TradeRepository,
		app.AssetPriceRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.QueryService = service.NewQueryService(
		app.DB,
		app.WalletRepository,
		app.TransactionRepository,
	)
	app.Logger.Info("Services initialized.")

	walletHandler := handler.NewWalletHandler(app.WalletService, app.QueryService, app.Logger)
	tradingHandler := handler.NewTradingHandler(app.TradingService, app.Logger)
	app.HTTPHandler = router.NewRouter(walletHandler, tradingHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
