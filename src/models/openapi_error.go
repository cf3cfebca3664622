package models

import "fmt"

type OpenApiErrorDTO struct {
	ErrorCode string `json:"ErrorCode"`
	Message   string `json:"Message"`
}

type OpenApiError struct {
	StatusCode    int
	ErrorCode     string
	Message       string
	CorrelationID string
}

func (e *OpenApiError) Error() string {
	msg := fmt.Sprintf("http %d", e.StatusCode)
	if e.ErrorCode != "" {
		msg = fmt.Sprintf("%s %s", msg, e.ErrorCode)
	}

	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}

	if e.CorrelationID != "" {
		msg = fmt.Sprintf("%s (X-Correlation: %s)", msg, e.CorrelationID)
	}

	return msg
}

func NewOpenApiError(statusCode int, dto OpenApiErrorDTO, correlationID string) *OpenApiError {
	return &OpenApiError{
		StatusCode:    statusCode,
		ErrorCode:     dto.ErrorCode,
		Message:       dto.Message,
		CorrelationID: correlationID,
	}
}
