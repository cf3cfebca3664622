package models

// InstrumentConditions is a snapshot of the trading settings of one instrument
// for one account. It is fetched per validation and never cached.
type InstrumentConditions struct {
	Uic                 int
	AssetType           AssetType
	SupportedOrderTypes []OrderType
	IsTradable          bool
	TradableOn          []string
	TickSize            *float64
	TickSizeScheme      *TickSizeScheme
	MinimumTradeSize    *float64
	MinimumLotSize      *float64
	LotSize             *float64
	LotSizeType         LotSizeType
	MinimumOrderValue   *float64
}

func (c *InstrumentConditions) SupportsOrderType(orderType OrderType) bool {
	for _, t := range c.SupportedOrderTypes {
		if t == orderType {
			return true
		}
	}

	return false
}

func (c *InstrumentConditions) IsTradableOn(accountID string) bool {
	for _, id := range c.TradableOn {
		if id == accountID {
			return true
		}
	}

	return false
}
