package models

type OrderResponseDTO struct {
	OrderId   string        `json:"OrderId"`
	ErrorInfo *ErrorInfoDTO `json:"ErrorInfo,omitempty"`
	RequestId string        `json:"-"`
}

type CancelOrdersResponseDTO struct {
	Orders []OrderResponseDTO `json:"Orders"`
}
