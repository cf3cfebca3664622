package validator

import (
	"math"
	"strings"

	"github.com/jiaming2012/openapi-orders/src/models"
)

func checkSupportedOrderType(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	if conditions.SupportsOrderType(ticket.OrderType) {
		return nil
	}

	return models.Findings{models.NewFinding(models.RuleSupportedOrderType, "The order type %s is not supported for this instrument.", ticket.OrderType)}
}

func checkTradability(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	if conditions.IsTradable {
		return nil
	}

	return models.Findings{models.NewFinding(models.RuleTradability, "This instrument is not tradable!")}
}

func (v *Validator) checkTickSize(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	for _, t := range v.tickSizeSkipList {
		if ticket.OrderType == t {
			return nil
		}
	}

	if conditions.TickSizeScheme == nil && conditions.TickSize == nil {
		return nil
	}

	if ticket.OrderPrice == nil {
		return models.Findings{models.NewFinding(models.RuleTickSize, "The order type %s requires a price to check against the tick size.", ticket.OrderType)}
	}

	price := *ticket.OrderPrice

	var tickSize float64
	if conditions.TickSizeScheme != nil {
		tickSize = conditions.TickSizeScheme.TickSizeFor(price)
	} else {
		tickSize = *conditions.TickSize
	}

	if tickSize <= 0 {
		return models.Findings{models.NewFinding(models.RuleTickSize, "The tick size of %v is invalid.", tickSize)}
	}

	if !IsTickAligned(price, tickSize) {
		return models.Findings{models.NewFinding(models.RuleTickSize, "The price of %v doesn't match the tick size of %v", price, tickSize)}
	}

	return nil
}

func (v *Validator) checkAccountEligibility(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	if v.accounts == nil {
		return models.Findings{models.NewFinding(models.RuleAccountEligibility, "The account %s cannot be resolved.", ticket.AccountKey)}
	}

	accountID, found := v.accounts.ResolveAccountID(ticket.AccountKey)
	if !found {
		return models.Findings{models.NewFinding(models.RuleAccountEligibility, "The account %s cannot be resolved.", ticket.AccountKey)}
	}

	if conditions.IsTradableOn(accountID) {
		return nil
	}

	return models.Findings{models.NewFinding(models.RuleAccountEligibility, "This instrument cannot be traded on the selected account %s, but only on %s.", accountID, strings.Join(conditions.TradableOn, ", "))}
}

func checkMinimumTradeSize(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	if conditions.MinimumTradeSize == nil || ticket.Amount >= *conditions.MinimumTradeSize {
		return nil
	}

	return models.Findings{models.NewFinding(models.RuleMinimumTradeSize, "The order amount must be at least the minimumTradeSize of %v", *conditions.MinimumTradeSize)}
}

func (v *Validator) checkMinimumOrderValue(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	if ticket.AssetType != models.AssetTypeStock || conditions.MinimumOrderValue == nil {
		return nil
	}

	price := v.fallbackPrice
	if ticket.OrderPrice != nil {
		price = *ticket.OrderPrice
	}

	if ticket.Amount*price >= *conditions.MinimumOrderValue {
		return nil
	}

	return models.Findings{models.NewFinding(models.RuleMinimumOrderValue, "The order value (amount * price) must be at least the minimumOrderValue of %v", *conditions.MinimumOrderValue)}
}

func checkLotSize(ticket models.OrderTicket, conditions *models.InstrumentConditions) models.Findings {
	if ticket.AssetType != models.AssetTypeStock || conditions.LotSizeType == models.LotSizeTypeNotUsed {
		return nil
	}

	findings := models.Findings{}

	if conditions.MinimumLotSize != nil && ticket.Amount < *conditions.MinimumLotSize {
		findings = append(findings, models.NewFinding(models.RuleLotSize, "The amount must be at least the minimumLotSize of %v", *conditions.MinimumLotSize))
	}

	if conditions.LotSize != nil && *conditions.LotSize > 0 && math.Mod(ticket.Amount, *conditions.LotSize) != 0 {
		findings = append(findings, models.NewFinding(models.RuleLotSize, "The amount must be the lot size or a multiplication of %v", *conditions.LotSize))
	}

	return findings
}
