package services

import (
	"github.com/sokoflow/fx_engine/internal/core/ports"
	portsrepo "github.com/sokoflow/fx_engine/internal/core/ports/repositories"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/platform/config"
)

// NewContainer creates the service container with properly wired dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, feed ports.RateFeedProvider, cfg config.FXConfig) *portssvc.ServiceContainer {
	rate := NewRateService(repos.ExchangeRateRepo, feed, cfg)
	return &portssvc.ServiceContainer{
		Rate:       rate,
		Quote:      NewQuoteService(repos.QuoteRepo, rate, cfg),
		Settlement: NewSettlementService(repos.QuoteRepo, repos.TransactionRepo),
	}
}
