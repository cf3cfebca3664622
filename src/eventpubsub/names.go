package eventpubsub

const (
	OrderPlacedEvent      = "OrderPlacedEvent"
	OrderModifiedEvent    = "OrderModifiedEvent"
	OrderCancelledEvent   = "OrderCancelledEvent"
	FindingsReportedEvent = "FindingsReportedEvent"
	DiagnosticEvent       = "DiagnosticEvent"
	Error                 = "DefaultError"
)
