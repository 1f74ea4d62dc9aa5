package certgen

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseSpreadsheet parses an uploaded recipient sheet into header-keyed row
// maps. .csv goes through encoding/csv; anything else is treated as an Excel
// workbook and only its first sheet is read. Missing cells become empty
// strings, never absent keys.
func ParseSpreadsheet(data []byte, filename string) ([]map[string]string, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = readCSVRecords(data)
	default:
		records, err = readXLSXRecords(data)
	}
	if err != nil {
		return nil, err
	}

	return ParseRowsToMap(records)
}

func readCSVRecords(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Rows may have fewer cells than the header
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return records, nil
}

func readXLSXRecords(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}

	return records, nil
}

// ParseRowsToMap converts raw records to a slice of maps. The first row is
// the header, and its values are used as keys. Duplicate headers are renamed
// with a numeric suffix; short rows are padded with empty strings.
func ParseRowsToMap(records [][]string) ([]map[string]string, error) {
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	headers := records[0]
	headerCount := make(map[string]int)

	// Check for duplicate headers and rename them
	for i, header := range headers {
		if count, exists := headerCount[header]; exists {
			headerCount[header]++
			headers[i] = fmt.Sprintf("%s_%d", header, count+1)
		} else {
			headerCount[header] = 0
		}
	}

	result := make([]map[string]string, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		row := make(map[string]string)
		for j := 0; j < len(headers); j++ {
			if j < len(records[i]) {
				row[headers[j]] = records[i][j]
			} else {
				// Handle missing values
				row[headers[j]] = ""
			}
		}
		result = append(result, row)
	}

	return result, nil
}
