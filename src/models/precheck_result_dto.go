package models

import "fmt"

const PreCheckResultOk = "Ok"

type ErrorInfoDTO struct {
	ErrorCode string `json:"ErrorCode"`
	Message   string `json:"Message"`
}

type PreCheckRequest struct {
	OrderTicket
	FieldGroups []string `json:"FieldGroups"`
}

type PreCheckResultDTO struct {
	PreCheckResult        string                 `json:"PreCheckResult"`
	ErrorInfo             *ErrorInfoDTO          `json:"ErrorInfo,omitempty"`
	EstimatedCashRequired float64                `json:"EstimatedCashRequired,omitempty"`
	Costs                 map[string]interface{} `json:"Costs,omitempty"`
	MarginImpactBuySell   map[string]interface{} `json:"MarginImpactBuySell,omitempty"`
}

// Err reports why the order could not be placed. A result of Ok can still
// carry a functional error, e.g. insufficient margin.
func (dto *PreCheckResultDTO) Err() error {
	if dto.PreCheckResult != PreCheckResultOk {
		if dto.ErrorInfo != nil {
			return fmt.Errorf("precheck %s: %s (%s)", dto.PreCheckResult, dto.ErrorInfo.Message, dto.ErrorInfo.ErrorCode)
		}

		return fmt.Errorf("precheck %s", dto.PreCheckResult)
	}

	if dto.ErrorInfo != nil {
		return fmt.Errorf("precheck ok with error: %s (%s)", dto.ErrorInfo.Message, dto.ErrorInfo.ErrorCode)
	}

	return nil
}
