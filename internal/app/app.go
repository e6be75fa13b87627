package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
	"household-ledger-go/internal/config"
	"household-ledger-go/internal/db"
	accountdomain "household-ledger-go/internal/domain/account"
	dashboarddomain "household-ledger-go/internal/domain/dashboard"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
	"household-ledger-go/internal/repository/inmemory"
	accountrepo "household-ledger-go/internal/repository/postgres/account"
	ledgerrepo "household-ledger-go/internal/repository/postgres/ledger"
	"household-ledger-go/internal/transport/httpserver"
	"household-ledger-go/internal/transport/httpserver/handler"
	"household-ledger-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	pool       *pgxpool.Pool
}

type stores struct {
	accounts accountdomain.Repository
	ledger   ledgerdomain.Repository
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	log.Info("app: initializing stores", "backend", cfg.Store)
	st, err := a.openStores(ctx, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var cache accountdomain.ViewCache
	if cfg.Accounts.ViewCacheTTL > 0 {
		cache = inmemory.NewViewCache()
	}

	accounts := accountdomain.NewService(st.accounts, cache, cfg.Accounts.ViewCacheTTL)
	ledger := ledgerdomain.NewService(st.ledger, cfg.Ledger.DefaultInstallmentMonths)
	dashboard := dashboarddomain.NewService(accounts, ledger)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handler.New(accounts, ledger, dashboard, log), log)

	a.httpServer = httpserver.New(cfg, router)
	return a, nil
}

func (a *App) openStores(ctx context.Context, log logger.Logger) (stores, error) {
	if a.cfg.Store == config.StoreMemory {
		return stores{
			accounts: inmemory.NewAccountStore(),
			ledger:   inmemory.NewLedgerStore(),
		}, nil
	}

	gormDB, err := db.NewPostgres(ctx, a.cfg.DB, log)
	if err != nil {
		return stores{}, err
	}
	a.db = gormDB

	if a.cfg.DB.Migrate {
		if err := db.Migrate(gormDB, log); err != nil {
			return stores{}, err
		}
	}

	pool, err := db.NewPool(ctx, a.cfg.DB, log)
	if err != nil {
		return stores{}, err
	}
	a.pool = pool

	return stores{
		accounts: accountrepo.NewPostgres(gormDB),
		ledger:   ledgerrepo.NewPostgres(pool),
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
