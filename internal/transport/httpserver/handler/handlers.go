package handler

import (
	accountdomain "household-ledger-go/internal/domain/account"
	dashboarddomain "household-ledger-go/internal/domain/dashboard"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
	"household-ledger-go/pkg/logger"
)

type Handlers struct {
	Accounts  *accountdomain.Service
	Ledger    *ledgerdomain.Service
	Dashboard *dashboarddomain.Service
	log       logger.Logger
}

func New(accounts *accountdomain.Service, ledger *ledgerdomain.Service, dashboard *dashboarddomain.Service, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{
		Accounts:  accounts,
		Ledger:    ledger,
		Dashboard: dashboard,
		log:       log,
	}
}
