package models

import "fmt"

// Diagnostic reports a structural problem with a ticket or a selection, such as
// an order type the platform does not know. The ticket it refers to is left
// unchanged.
type Diagnostic struct {
	Field   string
	Value   interface{}
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s (%s=%v)", d.Message, d.Field, d.Value)
}

func NewDiagnostic(field string, value interface{}, message string) *Diagnostic {
	return &Diagnostic{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
