package services

// ServiceContainer holds all the service facades handlers depend on.
type ServiceContainer struct {
	Rate       RateSvcFacade
	Quote      QuoteSvcFacade
	Settlement SettlementSvcFacade
}
