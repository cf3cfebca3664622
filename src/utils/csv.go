package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/gocarina/gocsv"
)

func ExportToCsv[T any](outDir string, rows []T, outFilePrefix string, now time.Time) (string, error) {
	outFilePath := path.Join(outDir, fmt.Sprintf("%s_%s.csv", outFilePrefix, now.Format("2006-01-02_15-04-05")))

	// Create directory if it doesn't exist
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("ExportToCsv: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteCsv(file, rows); err != nil {
		return "", fmt.Errorf("ExportToCsv: %w", err)
	}

	return outFilePath, nil
}

func WriteCsv[T any](out io.Writer, rows []T) error {
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(out))

	if err := gocsv.MarshalCSV(&rows, writer); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}
