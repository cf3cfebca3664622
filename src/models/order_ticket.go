package models

import (
	"encoding/json"
	"fmt"
)

// OrderTicket is the order request exchanged with the trading API. Optional
// price fields are nil when the current OrderType does not use them.
type OrderTicket struct {
	Uic                          int           `json:"Uic" yaml:"Uic"`
	AssetType                    AssetType     `json:"AssetType" yaml:"AssetType"`
	AccountKey                   string        `json:"AccountKey,omitempty" yaml:"AccountKey,omitempty"`
	BuySell                      BuySell       `json:"BuySell" yaml:"BuySell"`
	Amount                       float64       `json:"Amount" yaml:"Amount"`
	OrderType                    OrderType     `json:"OrderType" yaml:"OrderType"`
	OrderPrice                   *float64      `json:"OrderPrice,omitempty" yaml:"OrderPrice,omitempty"`
	StopLimitPrice               *float64      `json:"StopLimitPrice,omitempty" yaml:"StopLimitPrice,omitempty"`
	TrailingStopDistanceToMarket *float64      `json:"TrailingStopDistanceToMarket,omitempty" yaml:"TrailingStopDistanceToMarket,omitempty"`
	TrailingStopStep             *float64      `json:"TrailingStopStep,omitempty" yaml:"TrailingStopStep,omitempty"`
	OrderDuration                OrderDuration `json:"OrderDuration" yaml:"OrderDuration"`
	ManualOrder                  bool          `json:"ManualOrder" yaml:"ManualOrder"`
	ExternalReference            string        `json:"ExternalReference,omitempty" yaml:"ExternalReference,omitempty"`
	OrderId                      string        `json:"OrderId,omitempty" yaml:"-"`
}

func (t OrderTicket) Clone() OrderTicket {
	out := t
	out.OrderPrice = cloneFloat(t.OrderPrice)
	out.StopLimitPrice = cloneFloat(t.StopLimitPrice)
	out.TrailingStopDistanceToMarket = cloneFloat(t.TrailingStopDistanceToMarket)
	out.TrailingStopStep = cloneFloat(t.TrailingStopStep)
	out.OrderDuration = t.OrderDuration.Clone()
	return out
}

// ClearPriceFields removes every field whose presence depends on the order type.
func (t *OrderTicket) ClearPriceFields() {
	t.OrderPrice = nil
	t.StopLimitPrice = nil
	t.TrailingStopDistanceToMarket = nil
	t.TrailingStopStep = nil
}

// PriceFields returns the JSON names of the order-type dependent fields that are set.
func (t OrderTicket) PriceFields() []string {
	fields := make([]string, 0, 4)

	if t.OrderPrice != nil {
		fields = append(fields, "OrderPrice")
	}

	if t.StopLimitPrice != nil {
		fields = append(fields, "StopLimitPrice")
	}

	if t.TrailingStopDistanceToMarket != nil {
		fields = append(fields, "TrailingStopDistanceToMarket")
	}

	if t.TrailingStopStep != nil {
		fields = append(fields, "TrailingStopStep")
	}

	return fields
}

func (t OrderTicket) String() string {
	price := "-"
	if t.OrderPrice != nil {
		price = fmt.Sprintf("%v", *t.OrderPrice)
	}

	return fmt.Sprintf("Uic: %d, AssetType: %s, %s %v @ %s (%s, %s)", t.Uic, t.AssetType, t.BuySell, t.Amount, price, t.OrderType, t.OrderDuration.DurationType)
}

func (t OrderTicket) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(t, "", "    ")
}

// ParseOrderTicket decodes a ticket. Malformed input is reported as a Diagnostic.
func ParseOrderTicket(data []byte) (OrderTicket, error) {
	var ticket OrderTicket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return OrderTicket{}, NewDiagnostic("OrderTicket", string(data), fmt.Sprintf("malformed order ticket: %v", err))
	}

	return ticket, nil
}

func Float(v float64) *float64 {
	return &v
}

func Bool(v bool) *bool {
	return &v
}

func String(v string) *string {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}

	out := *v
	return &out
}
