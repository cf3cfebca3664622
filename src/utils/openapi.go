package utils

import (
	"encoding/json"
	"fmt"
)

// ParseOpenApiResponse accepts both response shapes of the reference data
// endpoints: a list wrapped as {"Data": [...]} and a single bare object.
func ParseOpenApiResponse[T any](response []byte) ([]T, error) {
	header := make(map[string]json.RawMessage)

	if err := json.Unmarshal(response, &header); err != nil {
		return nil, fmt.Errorf("ParseOpenApiResponse(): failed to unmarshal header in response: %w", err)
	}

	if v, found := header["Data"]; found {
		var dtos []T
		if err := json.Unmarshal(v, &dtos); err != nil {
			return nil, fmt.Errorf("ParseOpenApiResponse(): failed to unmarshal data in response: %w", err)
		}

		return dtos, nil
	}

	var singleDTO T
	if err := json.Unmarshal(response, &singleDTO); err != nil {
		return nil, fmt.Errorf("ParseOpenApiResponse(): failed to unmarshal dto in response: %w", err)
	}

	return []T{singleDTO}, nil
}
