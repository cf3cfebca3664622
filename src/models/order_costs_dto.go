package models

import "fmt"

type CostDetailDTO struct {
	TotalCost    float64                `json:"TotalCost"`
	TotalCostPct float64                `json:"TotalCostPct,omitempty"`
	TradingCost  map[string]interface{} `json:"TradingCost,omitempty"`
	HoldingCost  map[string]interface{} `json:"HoldingCost,omitempty"`
}

type CostDTO struct {
	Long  *CostDetailDTO `json:"Long,omitempty"`
	Short *CostDetailDTO `json:"Short,omitempty"`
}

type OrderCostsDTO struct {
	AccountKey       string                 `json:"AccountKey"`
	AssetType        AssetType              `json:"AssetType"`
	Uic              int                    `json:"Uic"`
	Amount           float64                `json:"Amount"`
	Price            float64                `json:"Price,omitempty"`
	HoldingPeriod    int                    `json:"HoldingPeriodInDays,omitempty"`
	Cost             CostDTO                `json:"Cost"`
	DisplayAndFormat map[string]interface{} `json:"DisplayAndFormat,omitempty"`
}

// TotalCost returns the total cost of the side the order trades on.
func (dto *OrderCostsDTO) TotalCost(side BuySell) (float64, error) {
	detail := dto.Cost.Long
	if side == Sell {
		detail = dto.Cost.Short
	}

	if detail == nil {
		return 0, fmt.Errorf("no %s costs in response", side)
	}

	return detail.TotalCost, nil
}
