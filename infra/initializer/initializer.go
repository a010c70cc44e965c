// Package initializer assembles the application dependencies at startup.
package initializer

import (
	"fmt"

	"github.com/sahakar/coopbank/infra"
	infrarepo "github.com/sahakar/coopbank/infra/repository"
	accountmodel "github.com/sahakar/coopbank/infra/repository/account"
	auditmodel "github.com/sahakar/coopbank/infra/repository/audit"
	bankmodel "github.com/sahakar/coopbank/infra/repository/bank"
	kycmodel "github.com/sahakar/coopbank/infra/repository/kyc"
	transactionmodel "github.com/sahakar/coopbank/infra/repository/transaction"
	usermodel "github.com/sahakar/coopbank/infra/repository/user"
	"github.com/sahakar/coopbank/pkg/app"
	"github.com/sahakar/coopbank/pkg/config"
)

// InitializeDependencies builds the logger, database connection and unit of
// work the services run on.
func InitializeDependencies(cfg *config.App) (deps *app.Deps, err error) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return nil, err
	}

	if err = db.AutoMigrate(
		&bankmodel.Bank{},
		&usermodel.User{},
		&accountmodel.Account{},
		&transactionmodel.Transaction{},
		&kycmodel.Document{},
		&auditmodel.Record{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	deps.Uow = infrarepo.NewUoW(db)

	return deps, nil
}
