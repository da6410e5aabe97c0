package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"levelup/models"
	"levelup/pipeline"
)

func sampleApps() []models.Applicant {
	submitted := time.Date(2026, 8, 15, 9, 30, 0, 0, time.Local)
	return []models.Applicant{
		{
			FullName:        "Aarav Sharma",
			Phone:           "9876543210",
			Email:           "aarav@example.com",
			City:            "Hyderabad",
			Age:             22,
			Gender:          "Male",
			Education:       "B.Tech",
			CurrentPosition: "Student",
			Reference:       "Priya",
			Status:          "",
			SalesCompleted:  3,
			Starred:         true,
			Notes:           "call back monday",
			SubmittedAt:     submitted,
		},
		{
			FullName:    "Bhavna Rao",
			Phone:       "9123456780",
			Email:       "bhavna@example.com",
			City:        "Vijayawada",
			Reference:   "Ravi",
			Status:      pipeline.StatusHired,
			SubmittedAt: submitted.AddDate(0, 0, 1),
		},
	}
}

func TestRowValues(t *testing.T) {
	row := Row(sampleApps()[0])
	if len(row) != len(Columns) {
		t.Fatalf("row has %d cells, want %d", len(row), len(Columns))
	}

	want := map[string]string{
		"Name":             "Aarav Sharma",
		"Phone":            "9876543210",
		"Email":            "aarav@example.com",
		"City":             "Hyderabad",
		"Age":              "22",
		"Gender":           "Male",
		"Education":        "B.Tech",
		"Current Position": "Student",
		"Reference":        "Priya",
		"Status":           "New",
		"Application Date": "15/08/2026",
		"Sales Completed":  "3",
		"Starred":          "Yes",
		"Notes":            "call back monday",
	}
	for i, col := range Columns {
		if row[i] != want[col] {
			t.Fatalf("column %q = %q, want %q", col, row[i], want[col])
		}
	}
}

func TestRowOptionalFields(t *testing.T) {
	row := Row(sampleApps()[1])
	byCol := make(map[string]string, len(Columns))
	for i, col := range Columns {
		byCol[col] = row[i]
	}
	if byCol["Age"] != "" {
		t.Fatalf("Age = %q, want empty for unset age", byCol["Age"])
	}
	if byCol["Starred"] != "No" {
		t.Fatalf("Starred = %q, want No", byCol["Starred"])
	}
	if byCol["Status"] != pipeline.StatusHired {
		t.Fatalf("Status = %q, want %q", byCol["Status"], pipeline.StatusHired)
	}
}

// Export fidelity: a file built from a filtered list must contain exactly
// that list's rows, not the unfiltered total.
func TestWriteCSVMatchesFilteredList(t *testing.T) {
	apps := sampleApps()
	filtered := pipeline.Apply(apps, pipeline.Filters{Status: pipeline.StatusHired})
	if len(filtered) != 1 {
		t.Fatalf("expected 1 hired applicant, got %d", len(filtered))
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, filtered); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(records) != 1+len(filtered) {
		t.Fatalf("CSV has %d records, want header + %d rows", len(records), len(filtered))
	}
	for i, col := range Columns {
		if records[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][0] != "Bhavna Rao" {
		t.Fatalf("data row name = %q, want Bhavna Rao", records[1][0])
	}
}

func TestWriteCSVEmptyListHasOnlyHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("CSV has %d records, want header only", len(records))
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	apps := sampleApps()
	wb, err := Workbook(apps)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1+len(apps) {
		t.Fatalf("sheet has %d rows, want header + %d", len(rows), len(apps))
	}
	for i, col := range Columns {
		if rows[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "Aarav Sharma" || rows[2][0] != "Bhavna Rao" {
		t.Fatalf("data rows out of order: %q, %q", rows[1][0], rows[2][0])
	}

	statusIdx := -1
	for i, col := range Columns {
		if col == "Status" {
			statusIdx = i
		}
	}
	if rows[1][statusIdx] != "New" {
		t.Fatalf("missing status exported as %q, want New", rows[1][statusIdx])
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	tests := []struct {
		got  string
		want string
	}{
		{AdminFilename("", "xlsx"), "mana-levelup-all-applications.xlsx"},
		{AdminFilename("Priya", "xlsx"), "mana-levelup-priya-applications.xlsx"},
		{AdminFilename("Team Hyderabad", "csv"), "mana-levelup-team-hyderabad-applications.csv"},
		{ReferralFilename("Priya Reddy", now, "xlsx"), "referrals-priya-reddy-2026-08-30.xlsx"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("filename = %q, want %q", tt.got, tt.want)
		}
	}
}
