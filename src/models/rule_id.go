package models

type RuleID string

const (
	RuleSupportedOrderType RuleID = "SupportedOrderType"
	RuleTradability        RuleID = "Tradability"
	RuleTickSize           RuleID = "TickSize"
	RuleAccountEligibility RuleID = "AccountEligibility"
	RuleMinimumTradeSize   RuleID = "MinimumTradeSize"
	RuleMinimumOrderValue  RuleID = "MinimumOrderValue"
	RuleLotSize            RuleID = "LotSize"
)
