// Package app wires the service layer from its dependencies.
package app

import (
	"log/slog"
	"time"

	"github.com/sahakar/coopbank/pkg/config"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
	accountsvc "github.com/sahakar/coopbank/pkg/service/account"
	auditsvc "github.com/sahakar/coopbank/pkg/service/audit"
	authsvc "github.com/sahakar/coopbank/pkg/service/auth"
	banksvc "github.com/sahakar/coopbank/pkg/service/bank"
	kycsvc "github.com/sahakar/coopbank/pkg/service/kyc"
	ledgersvc "github.com/sahakar/coopbank/pkg/service/ledger"
	usersvc "github.com/sahakar/coopbank/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App holds the constructed services and their configuration.
type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *authsvc.Service
	UserService    *usersvc.Service
	BankService    *banksvc.Service
	AccountService *accountsvc.Service
	LedgerService  *ledgersvc.Service
	KycService     *kycsvc.Service
	AuditService   *auditsvc.Service
}

// New constructs every service against the shared unit of work.
func New(deps *Deps, cfg *config.App) *App {
	pol := policy.Policy{}
	if cfg.Transfer != nil {
		pol.AllowCrossTenantTransfer = cfg.Transfer.AllowCrossTenant
	}

	auditService := auditsvc.New(deps.Uow, pol, deps.Logger)

	a := &App{
		Deps:         deps,
		Config:       cfg,
		AuditService: auditService,
	}
	a.AuthService = authsvc.New(deps.Uow, cfg.Jwt, deps.Logger)
	a.UserService = usersvc.New(deps.Uow, deps.Logger)
	a.BankService = banksvc.New(deps.Uow, deps.Logger)
	a.AccountService = accountsvc.New(deps.Uow, auditService, pol, deps.Logger)
	var txnTimeout time.Duration
	if cfg.Txn != nil {
		txnTimeout = cfg.Txn.Timeout
	}
	a.LedgerService = ledgersvc.New(deps.Uow, auditService, pol, txnTimeout, deps.Logger)
	a.KycService = kycsvc.New(deps.Uow, auditService, pol, deps.Logger)
	return a
}
