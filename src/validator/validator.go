package validator

import (
	"github.com/jiaming2012/openapi-orders/src/models"
)

// AccountDirectory resolves an account key to the account id listed in an
// instrument's TradableOn.
type AccountDirectory interface {
	ResolveAccountID(accountKey string) (string, bool)
}

type rule func(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings

// Validator runs the pre-trade checks on a ticket. The checks are advisory:
// every violation is reported and none of them stops the others.
type Validator struct {
	accounts         AccountDirectory
	fallbackPrice    float64
	tickSizeSkipList []models.OrderType
}

type Option func(*Validator)

// WithFallbackPrice sets the price used for the order value check when the
// ticket has no OrderPrice.
func WithFallbackPrice(price float64) Option {
	return func(v *Validator) {
		v.fallbackPrice = price
	}
}

// WithTickSizeSkipList replaces the order types the tick size check ignores.
func WithTickSizeSkipList(orderTypes ...models.OrderType) Option {
	return func(v *Validator) {
		v.tickSizeSkipList = append([]models.OrderType{}, orderTypes...)
	}
}

func DefaultTickSizeSkipList() []models.OrderType {
	return []models.OrderType{models.OrderTypeMarket, models.OrderTypeTraspasoIn}
}

func (v *Validator) Validate(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	findings := models.Findings{}
	if conditions == nil {
		return findings
	}

	for _, r := range v.rules() {
		findings = append(findings, r(ticket, conditions)...)
	}

	return findings
}

func (v *Validator) TickSizeSkipList() []models.OrderType {
	return append([]models.OrderType{}, v.tickSizeSkipList...)
}

func (v *Validator) rules() []rule {
	return []rule{
		checkSupportedOrderType,
		checkTradability,
		v.checkTickSize,
		v.checkAccountEligibility,
		checkMinimumTradeSize,
		v.checkMinimumOrderValue,
		checkLotSize,
	}
}

func NewValidator(accounts AccountDirectory, opts ...Option) *Validator {
	v := &Validator{
		accounts:         accounts,
		fallbackPrice:    70,
		tickSizeSkipList: DefaultTickSizeSkipList(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}
