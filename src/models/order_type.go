package models

import "fmt"

type OrderType string

const (
	OrderTypeMarket                OrderType = "Market"
	OrderTypeLimit                 OrderType = "Limit"
	OrderTypeStopIfBid             OrderType = "StopIfBid"
	OrderTypeStopIfOffered         OrderType = "StopIfOffered"
	OrderTypeStopIfTraded          OrderType = "StopIfTraded"
	OrderTypeStopLimit             OrderType = "StopLimit"
	OrderTypeTrailingStop          OrderType = "TrailingStop"
	OrderTypeTrailingStopIfBid     OrderType = "TrailingStopIfBid"
	OrderTypeTrailingStopIfOffered OrderType = "TrailingStopIfOffered"
	OrderTypeTrailingStopIfTraded  OrderType = "TrailingStopIfTraded"

	// OrderTypeTraspasoIn is a transfer-in order. It carries no price and is
	// only recognised by the tick size check.
	OrderTypeTraspasoIn OrderType = "TraspasoIn"
)

var OrderTypes = []OrderType{
	OrderTypeMarket,
	OrderTypeLimit,
	OrderTypeStopIfBid,
	OrderTypeStopIfOffered,
	OrderTypeStopIfTraded,
	OrderTypeStopLimit,
	OrderTypeTrailingStop,
	OrderTypeTrailingStopIfBid,
	OrderTypeTrailingStopIfOffered,
	OrderTypeTrailingStopIfTraded,
}

func (t OrderType) Validate() error {
	for _, orderType := range OrderTypes {
		if t == orderType {
			return nil
		}
	}

	return fmt.Errorf("invalid order type: %s", t)
}

func (t OrderType) IsStop() bool {
	switch t {
	case OrderTypeStopIfBid, OrderTypeStopIfOffered, OrderTypeStopIfTraded:
		return true
	default:
		return false
	}
}

func (t OrderType) IsTrailingStop() bool {
	switch t {
	case OrderTypeTrailingStop, OrderTypeTrailingStopIfBid, OrderTypeTrailingStopIfOffered, OrderTypeTrailingStopIfTraded:
		return true
	default:
		return false
	}
}
