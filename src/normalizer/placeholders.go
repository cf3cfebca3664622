package normalizer

import "fmt"

// FictivePrice seeds order prices when no quote is available; the simulation
// environment does not serve prices for most instruments.
const FictivePrice = 70.0

// GoodTillDateDays is how far ahead a GoodTillDate order expires.
const GoodTillDateDays = 3

type Placeholders struct {
	OrderPrice                   float64 `yaml:"OrderPrice"`
	StopLimitPrice               float64 `yaml:"StopLimitPrice"`
	TrailingStopDistanceToMarket float64 `yaml:"TrailingStopDistanceToMarket"`
	TrailingStopStep             float64 `yaml:"TrailingStopStep"`
}

func DefaultPlaceholders() Placeholders {
	return Placeholders{
		OrderPrice:                   FictivePrice,
		StopLimitPrice:               FictivePrice + 1,
		TrailingStopDistanceToMarket: 1,
		TrailingStopStep:             0.1,
	}
}

func (p Placeholders) Validate() error {
	if p.OrderPrice <= 0 {
		return fmt.Errorf("order price placeholder must be positive: %v", p.OrderPrice)
	}

	if p.StopLimitPrice <= p.OrderPrice {
		return fmt.Errorf("stop limit price placeholder (%v) must be above the order price placeholder (%v)", p.StopLimitPrice, p.OrderPrice)
	}

	if p.TrailingStopDistanceToMarket <= 0 {
		return fmt.Errorf("trailing stop distance placeholder must be positive: %v", p.TrailingStopDistanceToMarket)
	}

	if p.TrailingStopStep <= 0 {
		return fmt.Errorf("trailing stop step placeholder must be positive: %v", p.TrailingStopStep)
	}

	return nil
}
