package models

import "fmt"

var (
	ErrNoLastOrder      = fmt.Errorf("no order has been placed in this session")
	ErrAccountNotFound  = fmt.Errorf("account key not found")
	ErrNoTicketTemplate = fmt.Errorf("no ticket template")
	ErrEmptyResponse    = fmt.Errorf("empty response")
)
