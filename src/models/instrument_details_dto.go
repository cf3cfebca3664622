package models

type InstrumentDetailsDTO struct {
	Uic                 int             `json:"Uic"`
	AssetType           AssetType       `json:"AssetType"`
	Description         string          `json:"Description"`
	Symbol              string          `json:"Symbol"`
	SupportedOrderTypes []OrderType     `json:"SupportedOrderTypes"`
	IsTradable          *bool           `json:"IsTradable"`
	TradableOn          []string        `json:"TradableOn"`
	TickSize            *float64        `json:"TickSize"`
	TickSizeScheme      *TickSizeScheme `json:"TickSizeScheme"`
	MinimumTradeSize    *float64        `json:"MinimumTradeSize"`
	MinimumLotSize      *float64        `json:"MinimumLotSize"`
	LotSize             *float64        `json:"LotSize"`
	LotSizeType         LotSizeType     `json:"LotSizeType"`
	MinimumOrderValue   *float64        `json:"MinimumOrderValue"`
}

// ToInstrumentConditions converts the reference data response. An omitted
// IsTradable is treated as tradable.
func (dto *InstrumentDetailsDTO) ToInstrumentConditions() *InstrumentConditions {
	isTradable := true
	if dto.IsTradable != nil {
		isTradable = *dto.IsTradable
	}

	supported := make([]OrderType, len(dto.SupportedOrderTypes))
	copy(supported, dto.SupportedOrderTypes)

	tradableOn := make([]string, len(dto.TradableOn))
	copy(tradableOn, dto.TradableOn)

	var scheme *TickSizeScheme
	if dto.TickSizeScheme != nil {
		elements := make([]TickSizeSchemeElement, len(dto.TickSizeScheme.Elements))
		copy(elements, dto.TickSizeScheme.Elements)
		scheme = &TickSizeScheme{
			DefaultTickSize: dto.TickSizeScheme.DefaultTickSize,
			Elements:        elements,
		}
	}

	return &InstrumentConditions{
		Uic:                 dto.Uic,
		AssetType:           dto.AssetType,
		SupportedOrderTypes: supported,
		IsTradable:          isTradable,
		TradableOn:          tradableOn,
		TickSize:            cloneFloat(dto.TickSize),
		TickSizeScheme:      scheme,
		MinimumTradeSize:    cloneFloat(dto.MinimumTradeSize),
		MinimumLotSize:      cloneFloat(dto.MinimumLotSize),
		LotSize:             cloneFloat(dto.LotSize),
		LotSizeType:         dto.LotSizeType,
		MinimumOrderValue:   cloneFloat(dto.MinimumOrderValue),
	}
}
