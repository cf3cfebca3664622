package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/openapi-orders/src/models"
)

var testAccounts = models.AccountList{
	{AccountKey: "key-1", AccountId: "A1"},
	{AccountKey: "key-3", AccountId: "A3"},
}

func newStockTicket(orderType models.OrderType, price *float64, amount float64) models.OrderTicket {
	return models.OrderTicket{
		Uic:        211,
		AssetType:  models.AssetTypeStock,
		AccountKey: "key-1",
		BuySell:    models.Buy,
		Amount:     amount,
		OrderType:  orderType,
		OrderPrice: price,
		OrderDuration: models.OrderDuration{
			DurationType: models.DurationTypeDayOrder,
		},
	}
}

// newConditions returns conditions under which the default ticket passes every check.
func newConditions() *models.InstrumentConditions {
	return &models.InstrumentConditions{
		Uic:                 211,
		AssetType:           models.AssetTypeStock,
		SupportedOrderTypes: []models.OrderType{models.OrderTypeMarket, models.OrderTypeLimit, models.OrderTypeStopIfTraded},
		IsTradable:          true,
		TradableOn:          []string{"A1", "A2"},
		TickSize:            models.Float(0.01),
		MinimumTradeSize:    models.Float(1),
		LotSizeType:         models.LotSizeTypeNotUsed,
		MinimumOrderValue:   models.Float(0),
	}
}

func TestValidate(t *testing.T) {
	v := NewValidator(testAccounts)

	t.Run("clean ticket has no findings", func(t *testing.T) {
		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 100), newConditions())
		assert.Empty(t, findings)
		assert.NoError(t, findings.Err())
	})

	t.Run("nil conditions", func(t *testing.T) {
		assert.Empty(t, v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 100), nil))
	})

	t.Run("SupportedOrderType", func(t *testing.T) {
		findings := v.Validate(newStockTicket(models.OrderTypeTrailingStop, models.Float(70), 100), newConditions())
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleSupportedOrderType, findings[0].RuleID)
		assert.Contains(t, findings[0].Message, "TrailingStop")
	})

	t.Run("Tradability", func(t *testing.T) {
		conditions := newConditions()
		conditions.IsTradable = false

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 100), conditions)
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleTradability, findings[0].RuleID)
	})

	t.Run("findings accumulate", func(t *testing.T) {
		conditions := newConditions()
		conditions.IsTradable = false
		conditions.MinimumTradeSize = models.Float(500)
		conditions.TickSize = models.Float(0.05)

		findings := v.Validate(newStockTicket(models.OrderTypeTrailingStop, models.Float(70.03), 100), conditions)
		assert.Len(t, findings.ByRule(models.RuleSupportedOrderType), 1)
		assert.Len(t, findings.ByRule(models.RuleTradability), 1)
		assert.Len(t, findings.ByRule(models.RuleTickSize), 1)
		assert.Len(t, findings.ByRule(models.RuleMinimumTradeSize), 1)
		assert.Len(t, findings, 4)
		assert.Error(t, findings.Err())
	})
}

func TestTickSizeRule(t *testing.T) {
	v := NewValidator(testAccounts)

	scheme := &models.TickSizeScheme{
		DefaultTickSize: 0.01,
		Elements: []models.TickSizeSchemeElement{
			{HighPrice: 100, TickSize: 0.05},
		},
	}

	t.Run("scheme element applies below its high price", func(t *testing.T) {
		assert.Equal(t, 0.05, scheme.TickSizeFor(50))

		conditions := newConditions()
		conditions.TickSize = nil
		conditions.TickSizeScheme = scheme

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(50.02), 100), conditions)
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleTickSize, findings[0].RuleID)
		assert.Contains(t, findings[0].Message, "0.05")
	})

	t.Run("scheme falls back to the default tick size", func(t *testing.T) {
		assert.Equal(t, 0.01, scheme.TickSizeFor(150))

		conditions := newConditions()
		conditions.TickSize = nil
		conditions.TickSizeScheme = scheme

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(150.02), 100), conditions)
		assert.Empty(t, findings)
	})

	t.Run("scheme elements are scanned in ascending order", func(t *testing.T) {
		unordered := models.TickSizeScheme{
			DefaultTickSize: 1,
			Elements: []models.TickSizeSchemeElement{
				{HighPrice: 500, TickSize: 0.5},
				{HighPrice: 10, TickSize: 0.01},
			},
		}

		assert.Equal(t, 0.01, unordered.TickSizeFor(5))
		assert.Equal(t, 0.5, unordered.TickSizeFor(10.5))
		assert.Equal(t, 1.0, unordered.TickSizeFor(501))
	})

	t.Run("price on a boundary uses that element", func(t *testing.T) {
		assert.Equal(t, 0.05, scheme.TickSizeFor(100))
	})

	t.Run("single tick size", func(t *testing.T) {
		conditions := newConditions()
		conditions.TickSize = models.Float(0.05)

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(10.03), 100), conditions)
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleTickSize, findings[0].RuleID)

		findings = v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(10.05), 100), conditions)
		assert.Empty(t, findings)
	})

	t.Run("market orders are skipped", func(t *testing.T) {
		conditions := newConditions()
		conditions.TickSize = models.Float(0.05)

		findings := v.Validate(newStockTicket(models.OrderTypeMarket, models.Float(10.03), 100), conditions)
		assert.Empty(t, findings.ByRule(models.RuleTickSize))
	})

	t.Run("TraspasoIn is skipped", func(t *testing.T) {
		conditions := newConditions()
		conditions.SupportedOrderTypes = append(conditions.SupportedOrderTypes, models.OrderTypeTraspasoIn)

		findings := v.Validate(newStockTicket(models.OrderTypeTraspasoIn, nil, 100), conditions)
		assert.Empty(t, findings.ByRule(models.RuleTickSize))
	})

	t.Run("stop orders are checked by default", func(t *testing.T) {
		conditions := newConditions()
		conditions.TickSize = models.Float(0.05)

		findings := v.Validate(newStockTicket(models.OrderTypeStopIfTraded, models.Float(10.03), 100), conditions)
		assert.Len(t, findings.ByRule(models.RuleTickSize), 1)
	})

	t.Run("skip list is configurable", func(t *testing.T) {
		v := NewValidator(testAccounts, WithTickSizeSkipList(models.OrderTypeMarket, models.OrderTypeTraspasoIn, models.OrderTypeStopIfTraded))
		conditions := newConditions()
		conditions.TickSize = models.Float(0.05)

		findings := v.Validate(newStockTicket(models.OrderTypeStopIfTraded, models.Float(10.03), 100), conditions)
		assert.Empty(t, findings.ByRule(models.RuleTickSize))
		assert.Contains(t, v.TickSizeSkipList(), models.OrderTypeStopIfTraded)
	})

	t.Run("missing order price", func(t *testing.T) {
		findings := v.Validate(newStockTicket(models.OrderTypeLimit, nil, 100), newConditions())
		assert.Len(t, findings.ByRule(models.RuleTickSize), 1)
	})

	t.Run("no tick size information", func(t *testing.T) {
		conditions := newConditions()
		conditions.TickSize = nil

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(10.03333), 100), conditions)
		assert.Empty(t, findings.ByRule(models.RuleTickSize))
	})
}

func TestAccountEligibilityRule(t *testing.T) {
	v := NewValidator(testAccounts)

	t.Run("account not in TradableOn", func(t *testing.T) {
		ticket := newStockTicket(models.OrderTypeLimit, models.Float(70), 100)
		ticket.AccountKey = "key-3"

		findings := v.Validate(ticket, newConditions())
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleAccountEligibility, findings[0].RuleID)
		assert.Contains(t, findings[0].Message, "A3")
		assert.Contains(t, findings[0].Message, "A1, A2")
	})

	t.Run("unknown account key", func(t *testing.T) {
		ticket := newStockTicket(models.OrderTypeLimit, models.Float(70), 100)
		ticket.AccountKey = "key-unknown"

		findings := v.Validate(ticket, newConditions())
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleAccountEligibility, findings[0].RuleID)
	})

	t.Run("no account directory", func(t *testing.T) {
		v := NewValidator(nil)
		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 100), newConditions())
		assert.Len(t, findings.ByRule(models.RuleAccountEligibility), 1)
	})
}

func TestMinimumTradeSizeRule(t *testing.T) {
	v := NewValidator(testAccounts)

	conditions := newConditions()
	conditions.MinimumTradeSize = models.Float(10)

	findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 9), conditions)
	require.Len(t, findings, 1)
	assert.Equal(t, models.RuleMinimumTradeSize, findings[0].RuleID)

	findings = v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 10), conditions)
	assert.Empty(t, findings)
}

func TestMinimumOrderValueRule(t *testing.T) {
	t.Run("uses the order price", func(t *testing.T) {
		v := NewValidator(testAccounts)
		conditions := newConditions()
		conditions.MinimumOrderValue = models.Float(1000)

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(9.99), 100), conditions)
		require.Len(t, findings, 1)
		assert.Equal(t, models.RuleMinimumOrderValue, findings[0].RuleID)

		findings = v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(10), 100), conditions)
		assert.Empty(t, findings)
	})

	t.Run("uses the fallback price for market orders", func(t *testing.T) {
		v := NewValidator(testAccounts, WithFallbackPrice(5))
		conditions := newConditions()
		conditions.MinimumOrderValue = models.Float(1000)

		findings := v.Validate(newStockTicket(models.OrderTypeMarket, nil, 100), conditions)
		assert.Len(t, findings.ByRule(models.RuleMinimumOrderValue), 1)

		findings = v.Validate(newStockTicket(models.OrderTypeMarket, nil, 200), conditions)
		assert.Empty(t, findings.ByRule(models.RuleMinimumOrderValue))
	})

	t.Run("only for stocks", func(t *testing.T) {
		v := NewValidator(testAccounts)
		conditions := newConditions()
		conditions.MinimumOrderValue = models.Float(1000000)

		ticket := newStockTicket(models.OrderTypeLimit, models.Float(70), 1)
		ticket.AssetType = models.AssetTypeContractFutures

		assert.Empty(t, v.Validate(ticket, conditions).ByRule(models.RuleMinimumOrderValue))
	})
}

func TestLotSizeRule(t *testing.T) {
	v := NewValidator(testAccounts)

	lotConditions := func() *models.InstrumentConditions {
		conditions := newConditions()
		conditions.LotSizeType = models.LotSizeTypeRoundLot
		conditions.MinimumLotSize = models.Float(10)
		conditions.LotSize = models.Float(5)
		return conditions
	}

	t.Run("below minimum and not a multiple", func(t *testing.T) {
		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 7), lotConditions())
		require.Len(t, findings, 2)
		assert.Equal(t, models.RuleLotSize, findings[0].RuleID)
		assert.Equal(t, models.RuleLotSize, findings[1].RuleID)
		assert.Contains(t, findings[0].Message, "minimumLotSize")
		assert.Contains(t, findings[1].Message, "multiplication")
	})

	t.Run("valid amount", func(t *testing.T) {
		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 15), lotConditions())
		assert.Empty(t, findings)
	})

	t.Run("not a multiple only", func(t *testing.T) {
		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 12), lotConditions())
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, "multiplication")
	})

	t.Run("lot size not defined", func(t *testing.T) {
		conditions := lotConditions()
		conditions.LotSize = nil

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 12), conditions)
		assert.Empty(t, findings)
	})

	t.Run("NotUsed skips the rule", func(t *testing.T) {
		conditions := lotConditions()
		conditions.LotSizeType = models.LotSizeTypeNotUsed

		findings := v.Validate(newStockTicket(models.OrderTypeLimit, models.Float(70), 7), conditions)
		assert.Empty(t, findings)
	})

	t.Run("only for stocks", func(t *testing.T) {
		ticket := newStockTicket(models.OrderTypeLimit, models.Float(70), 7)
		ticket.AssetType = models.AssetTypeStockOption

		findings := v.Validate(ticket, lotConditions())
		assert.Empty(t, findings)
	})
}
