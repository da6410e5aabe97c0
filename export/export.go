package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"levelup/models"
	"levelup/pipeline"
)

// SheetName matches the workbook sheet the dashboards always exported to.
const SheetName = "Applications"

// Columns is the fixed export column order.
var Columns = []string{
	"Name",
	"Phone",
	"Email",
	"City",
	"Age",
	"Gender",
	"Education",
	"Current Position",
	"Reference",
	"Status",
	"Application Date",
	"Sales Completed",
	"Starred",
	"Notes",
}

// Row flattens one applicant into the Columns order. Status goes through the
// same default the filters use.
func Row(a models.Applicant) []string {
	age := ""
	if a.Age > 0 {
		age = strconv.Itoa(a.Age)
	}
	starred := "No"
	if a.Starred {
		starred = "Yes"
	}
	return []string{
		a.FullName,
		a.Phone,
		a.Email,
		a.City,
		age,
		a.Gender,
		a.Education,
		a.CurrentPosition,
		a.Reference,
		pipeline.EffectiveStatus(a),
		a.SubmittedAt.Local().Format("02/01/2006"),
		strconv.Itoa(a.SalesCompleted),
		starred,
		a.Notes,
	}
}

// Rows maps the already-filtered list to export rows, one per applicant.
func Rows(apps []models.Applicant) [][]string {
	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, Row(a))
	}
	return rows
}

// WriteCSV serializes the filtered list as CSV with a header row.
func WriteCSV(w io.Writer, apps []models.Applicant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range Rows(apps) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Workbook builds an in-memory XLSX workbook with one Applications sheet.
func Workbook(apps []models.Applicant) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	if err := writeRow(f, 1, Columns); err != nil {
		return nil, err
	}
	for i, row := range Rows(apps) {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &row)
}

// AdminFilename names the admin download, optionally scoped to one reference.
func AdminFilename(reference, ext string) string {
	if reference == "" {
		return "mana-levelup-all-applications." + ext
	}
	return fmt.Sprintf("mana-levelup-%s-applications.%s", slug(reference), ext)
}

// ReferralFilename names the agent/reference download with the current date.
func ReferralFilename(label string, now time.Time, ext string) string {
	return fmt.Sprintf("referrals-%s-%s.%s", slug(label), now.Format("2006-01-02"), ext)
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(s)), "-"))
}
