package models

import "fmt"

type DurationType string

const (
	DurationTypeDayOrder          DurationType = "DayOrder"
	DurationTypeGoodTillCancel    DurationType = "GoodTillCancel"
	DurationTypeFillOrKill        DurationType = "FillOrKill"
	DurationTypeImmediateOrCancel DurationType = "ImmediateOrCancel"
	DurationTypeGoodTillDate      DurationType = "GoodTillDate"
)

func (d DurationType) Validate() error {
	switch d {
	case DurationTypeDayOrder, DurationTypeGoodTillCancel, DurationTypeFillOrKill, DurationTypeImmediateOrCancel, DurationTypeGoodTillDate:
		return nil
	default:
		return fmt.Errorf("invalid duration type: %s", d)
	}
}
