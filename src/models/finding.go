package models

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type Finding struct {
	RuleID  RuleID `json:"rule_id" csv:"rule_id"`
	Message string `json:"message" csv:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.RuleID, f.Message)
}

func NewFinding(ruleID RuleID, format string, args ...interface{}) Finding {
	return Finding{
		RuleID:  ruleID,
		Message: fmt.Sprintf(format, args...),
	}
}

type Findings []Finding

func (f Findings) ByRule(ruleID RuleID) Findings {
	out := Findings{}
	for _, finding := range f {
		if finding.RuleID == ruleID {
			out = append(out, finding)
		}
	}

	return out
}

// Err folds the findings into a single error, or nil when there are none.
// Validation itself never fails; callers that want to block submission use this.
func (f Findings) Err() error {
	var merr *multierror.Error
	for _, finding := range f {
		merr = multierror.Append(merr, fmt.Errorf("%s", finding.String()))
	}

	return merr.ErrorOrNil()
}
