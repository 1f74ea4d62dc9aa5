package certgen

import (
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseRowsToMap(t *testing.T) {
	tests := []struct {
		name     string
		records  [][]string
		expected []map[string]string
	}{
		{
			name: "Basic rows",
			records: [][]string{
				{"header1", "header2"},
				{"value1", "value2"},
				{"value3", "value4"},
			},
			expected: []map[string]string{
				{"header1": "value1", "header2": "value2"},
				{"header1": "value3", "header2": "value4"},
			},
		},
		{
			name:     "Empty sheet",
			records:  [][]string{},
			expected: []map[string]string{},
		},
		{
			name: "Missing values",
			records: [][]string{
				{"header1", "header2"},
				{"value1"},
				{"value3", "value4"},
			},
			expected: []map[string]string{
				{"header1": "value1", "header2": ""},
				{"header1": "value3", "header2": "value4"},
			},
		},
		{
			name: "Extra values",
			records: [][]string{
				{"header1", "header2"},
				{"value1", "value2", "extra"},
				{"value3", "value4"},
			},
			expected: []map[string]string{
				{"header1": "value1", "header2": "value2"},
				{"header1": "value3", "header2": "value4"},
			},
		},
		{
			name: "Duplicate headers renamed",
			records: [][]string{
				{"header", "header"},
				{"value1", "value2"},
			},
			expected: []map[string]string{
				{"header": "value1", "header_1": "value2"},
			},
		},
		{
			name: "Triple duplicate headers numbered in order",
			records: [][]string{
				{"header", "header", "header"},
				{"value1", "value2", "value3"},
			},
			expected: []map[string]string{
				{"header": "value1", "header_1": "value2", "header_2": "value3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseRowsToMap(tt.records)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseSpreadsheetCSV(t *testing.T) {
	data := []byte("Full Name,Program\nSok Dara,Computer Science\nChan Thida,\n")

	rows, err := ParseSpreadsheet(data, "recipients.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []map[string]string{
		{"Full Name": "Sok Dara", "Program": "Computer Science"},
		{"Full Name": "Chan Thida", "Program": ""},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("expected %v, got %v", expected, rows)
	}
}

func TestParseSpreadsheetXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "Full Name", "B1": "Program",
		"A2": "Sok Dara", "B2": "Computer Science",
		"A3": "Chan Thida",
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("failed to set cell %s: %v", cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to build workbook: %v", err)
	}

	rows, err := ParseSpreadsheet(buf.Bytes(), "recipients.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []map[string]string{
		{"Full Name": "Sok Dara", "Program": "Computer Science"},
		{"Full Name": "Chan Thida", "Program": ""},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("expected %v, got %v", expected, rows)
	}
}
