package models

type QuoteDTO struct {
	Ask          float64 `json:"Ask"`
	Bid          float64 `json:"Bid"`
	Mid          float64 `json:"Mid"`
	Amount       float64 `json:"Amount"`
	PriceTypeAsk string  `json:"PriceTypeAsk"`
	PriceTypeBid string  `json:"PriceTypeBid"`
	MarketState  string  `json:"MarketState"`
}

type InfoPriceDTO struct {
	Uic         int       `json:"Uic"`
	AssetType   AssetType `json:"AssetType"`
	LastUpdated string    `json:"LastUpdated"`
	Quote       *QuoteDTO `json:"Quote"`
}

// Price returns the bid, the price a limit order is seeded with. ok is false
// when the response carries no usable quote.
func (dto *InfoPriceDTO) Price() (float64, bool) {
	if dto.Quote == nil || dto.Quote.Bid <= 0 {
		return 0, false
	}

	return dto.Quote.Bid, true
}
