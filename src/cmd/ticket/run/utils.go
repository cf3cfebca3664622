package run

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/utils"
)

// ExportFindings writes the findings to a timestamped csv file in outDir.
func ExportFindings(outDir string, findings models.Findings, outFilePrefix string) (string, error) {
	return utils.ExportToCsv(outDir, []models.Finding(findings), outFilePrefix, time.Now())
}

func ReadTicket(path string) (models.OrderTicket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.OrderTicket{}, fmt.Errorf("ReadTicket: failed to read %s: %w", path, err)
	}

	return models.ParseOrderTicket(data)
}

// ReadConditions reads an instrument details response saved to a file.
func ReadConditions(path string) (*models.InstrumentConditions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadConditions: failed to read %s: %w", path, err)
	}

	var dto models.InstrumentDetailsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("ReadConditions: failed to parse %s: %w", path, err)
	}

	return dto.ToInstrumentConditions(), nil
}

// ReadAccounts reads an accounts response saved to a file.
func ReadAccounts(path string) (models.AccountList, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadAccounts: failed to read %s: %w", path, err)
	}

	accounts, err := utils.ParseOpenApiResponse[models.Account](data)
	if err != nil {
		return nil, fmt.Errorf("ReadAccounts: %w", err)
	}

	return models.AccountList(accounts), nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
