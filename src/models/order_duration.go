package models

type OrderDuration struct {
	DurationType               DurationType `json:"DurationType" yaml:"DurationType"`
	ExpirationDateTime         *string      `json:"ExpirationDateTime,omitempty" yaml:"ExpirationDateTime,omitempty"`
	ExpirationDateContainsTime *bool        `json:"ExpirationDateContainsTime,omitempty" yaml:"ExpirationDateContainsTime,omitempty"`
}

func (d OrderDuration) HasExpiration() bool {
	return d.ExpirationDateTime != nil || d.ExpirationDateContainsTime != nil
}

func (d OrderDuration) Clone() OrderDuration {
	out := OrderDuration{DurationType: d.DurationType}

	if d.ExpirationDateTime != nil {
		v := *d.ExpirationDateTime
		out.ExpirationDateTime = &v
	}

	if d.ExpirationDateContainsTime != nil {
		v := *d.ExpirationDateContainsTime
		out.ExpirationDateContainsTime = &v
	}

	return out
}
