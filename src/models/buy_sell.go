package models

import "fmt"

type BuySell string

const (
	Buy  BuySell = "Buy"
	Sell BuySell = "Sell"
)

func (s BuySell) Validate() error {
	switch s {
	case Buy, Sell:
		return nil
	default:
		return fmt.Errorf("invalid side: %s", s)
	}
}
