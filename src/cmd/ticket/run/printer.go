package run

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jiaming2012/openapi-orders/src/models"
)

func PrintFindings(out io.Writer, findings models.Findings) {
	if len(findings) == 0 {
		fmt.Fprintln(out, "No findings: the order conforms to the instrument conditions.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Rule", "Message"})
	table.SetAutoWrapText(false)

	for _, f := range findings {
		table.Append([]string{string(f.RuleID), f.Message})
	}

	table.Render()
}

func PrintTicket(out io.Writer, ticket models.OrderTicket) error {
	data, err := ticket.MarshalIndent()
	if err != nil {
		return fmt.Errorf("PrintTicket: failed to marshal ticket: %w", err)
	}

	fmt.Fprintln(out, string(data))
	return nil
}

func PrintPreCheck(out io.Writer, result *models.PreCheckResultDTO) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.Append([]string{"PreCheckResult", result.PreCheckResult})
	if result.ErrorInfo != nil {
		table.Append([]string{"ErrorCode", result.ErrorInfo.ErrorCode})
		table.Append([]string{"Message", result.ErrorInfo.Message})
	}

	if result.EstimatedCashRequired != 0 {
		table.Append([]string{"EstimatedCashRequired", fmt.Sprintf("%v", result.EstimatedCashRequired)})
	}

	for _, key := range sortedKeys(result.Costs) {
		table.Append([]string{"Costs." + key, fmt.Sprintf("%v", result.Costs[key])})
	}

	table.Render()
}

func PrintCosts(out io.Writer, costs *models.OrderCostsDTO) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Side", "Total cost", "Total cost %"})

	sides := []struct {
		name   string
		detail *models.CostDetailDTO
	}{
		{"Long", costs.Cost.Long},
		{"Short", costs.Cost.Short},
	}

	for _, side := range sides {
		if side.detail == nil {
			continue
		}

		table.Append([]string{side.name, fmt.Sprintf("%v", side.detail.TotalCost), fmt.Sprintf("%v", side.detail.TotalCostPct)})
	}

	table.SetCaption(true, strings.TrimSpace(fmt.Sprintf("Uic %d %s, amount %v", costs.Uic, costs.AssetType, costs.Amount)))
	table.Render()
}
