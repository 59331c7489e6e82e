package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jung-kurt/gofpdf"

	"nutricare/backend/models"
)

// ExportService assembles already-persisted client data into CSV, JSON or a
// PDF report. Data is fetched exactly once into a snapshot; the generators
// are pure functions over it and reuse the stored bmi together with the
// shared category rule.
type ExportService struct {
	validator *validator.Validate
	clients   *ClientService
	checkups  *CheckupService
}

// NewExportService creates a new ExportService instance.
func NewExportService(clients *ClientService, checkups *CheckupService) *ExportService {
	return &ExportService{
		validator: validator.New(),
		clients:   clients,
		checkups:  checkups,
	}
}

// ExportResult carries a generated document ready for download.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Export produces the requested CSV or JSON document for the selected
// clients. At least one section flag must be set.
func (s *ExportService) Export(ctx context.Context, req models.ExportRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error for export request: %v", err)
		return nil, fmt.Errorf("invalid export request: %w", err)
	}
	if !req.IncludePersonalData && !req.IncludeCheckups {
		return nil, errors.New("invalid export request: select at least one data section")
	}

	snapshot, err := s.buildSnapshot(ctx, req.ClientIDs, req.IncludeCheckups)
	if err != nil {
		return nil, err
	}

	date := time.Now().Format("2006-01-02")
	switch req.Format {
	case "csv":
		return &ExportResult{
			FileName:    fmt.Sprintf("clients_data_%s.csv", date),
			ContentType: "text/csv; charset=utf-8",
			Data:        generateCSV(snapshot, req.IncludePersonalData, req.IncludeCheckups),
		}, nil
	case "json":
		data, err := generateJSON(snapshot, req.IncludePersonalData, req.IncludeCheckups)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JSON export: %w", err)
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("clients_data_%s.json", date),
			ContentType: "application/json; charset=utf-8",
			Data:        data,
		}, nil
	}
	// Unreachable past validation.
	return nil, fmt.Errorf("unsupported export format %q", req.Format)
}

// ClientReport produces the paginated PDF medical record for one client.
func (s *ExportService) ClientReport(ctx context.Context, clientID string) (*ExportResult, error) {
	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	checkups, err := s.checkups.ListCheckups(ctx, clientID)
	if err != nil {
		return nil, err
	}

	data, err := generatePDF(models.ClientExport{Client: *client, Checkups: checkups})
	if err != nil {
		log.Printf("Error generating PDF report for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to generate PDF report: %w", err)
	}

	name := strings.ReplaceAll(client.FullName, " ", "_")
	return &ExportResult{
		FileName:    fmt.Sprintf("%s_medical_record_%s.pdf", name, time.Now().Format("2006-01-02")),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// buildSnapshot is the single fetch pass behind every export format.
func (s *ExportService) buildSnapshot(ctx context.Context, clientIDs []string, withCheckups bool) ([]models.ClientExport, error) {
	snapshot := make([]models.ClientExport, 0, len(clientIDs))
	for _, id := range clientIDs {
		client, err := s.clients.GetClient(ctx, id)
		if err != nil {
			return nil, err
		}
		entry := models.ClientExport{Client: *client}
		if withCheckups {
			checkups, err := s.checkups.ListCheckups(ctx, id)
			if err != nil {
				return nil, err
			}
			entry.Checkups = checkups
		}
		snapshot = append(snapshot, entry)
	}
	return snapshot, nil
}

// generateCSV writes the personal-data section (if included) followed by the
// checkups section (if included), separated by a blank line. encoding/csv
// handles quoting with embedded quotes doubled.
func generateCSV(snapshot []models.ClientExport, personal, checkups bool) []byte {
	var buf bytes.Buffer

	if personal {
		w := csv.NewWriter(&buf)
		w.Write([]string{"Full Name", "Email", "Phone", "Date of Birth"})
		for _, entry := range snapshot {
			w.Write([]string{
				entry.Client.FullName,
				entry.Client.Email,
				entry.Client.Phone,
				strOrEmpty(entry.Client.DateOfBirth),
			})
		}
		w.Flush()
		buf.WriteString("\n")
	}

	if checkups {
		w := csv.NewWriter(&buf)
		w.Write([]string{
			"Client", "Date", "Weight (kg)", "Height (cm)", "Waist (cm)",
			"BMI", "BMI Category", "Blood Pressure", "Blood Sugar", "Cholesterol", "Notes",
		})
		for _, entry := range snapshot {
			for _, ch := range entry.Checkups {
				w.Write([]string{
					entry.Client.FullName,
					ch.Date,
					formatFloat(ch.Weight),
					strconv.Itoa(ch.Height),
					intOrEmpty(ch.WaistCircumference),
					formatBMI(ch.BMI),
					string(models.CategoryForBMI(ch.BMI)),
					strOrEmpty(ch.BloodPressure),
					floatOrEmpty(ch.BloodSugar),
					floatOrEmpty(ch.Cholesterol),
					strOrEmpty(ch.Notes),
				})
			}
		}
		w.Flush()
	}

	return buf.Bytes()
}

// exportPersonalInfo and exportCheckup shape the JSON export; sections the
// caller did not request are omitted entirely.
type exportPersonalInfo struct {
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

type exportCheckup struct {
	Date               string   `json:"date"`
	Weight             float64  `json:"weight"`
	Height             int      `json:"height"`
	WaistCircumference *int     `json:"waistCircumference,omitempty"`
	BMI                float64  `json:"bmi"`
	BloodPressure      *string  `json:"bloodPressure,omitempty"`
	BloodSugar         *float64 `json:"bloodSugar,omitempty"`
	Cholesterol        *float64 `json:"cholesterol,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

type exportEntry struct {
	PersonalInfo *exportPersonalInfo `json:"personalInfo,omitempty"`
	Checkups     *[]exportCheckup    `json:"checkups,omitempty"`
}

func generateJSON(snapshot []models.ClientExport, personal, checkups bool) ([]byte, error) {
	out := make([]exportEntry, 0, len(snapshot))
	for _, entry := range snapshot {
		var e exportEntry
		if personal {
			e.PersonalInfo = &exportPersonalInfo{
				FullName:    entry.Client.FullName,
				Email:       entry.Client.Email,
				Phone:       entry.Client.Phone,
				DateOfBirth: entry.Client.DateOfBirth,
			}
		}
		if checkups {
			list := make([]exportCheckup, 0, len(entry.Checkups))
			for _, ch := range entry.Checkups {
				list = append(list, exportCheckup{
					Date:               ch.Date,
					Weight:             ch.Weight,
					Height:             ch.Height,
					WaistCircumference: ch.WaistCircumference,
					BMI:                ch.BMI,
					BloodPressure:      ch.BloodPressure,
					BloodSugar:         ch.BloodSugar,
					Cholesterol:        ch.Cholesterol,
					Notes:              ch.Notes,
				})
			}
			e.Checkups = &list
		}
		out = append(out, e)
	}
	return json.MarshalIndent(out, "", "  ")
}

// generatePDF lays out one client's medical record: a centered title, the
// identity block, a separator line, then each checkup in sequence with a
// page break when vertical space runs out.
func generatePDF(entry models.ClientExport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	title := "Medical Record"
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text((pageW-pdf.GetStringWidth(title))/2, 20, title)

	client := entry.Client
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 40, "Client: "+client.FullName)
	pdf.Text(20, 48, "Email: "+client.Email)
	pdf.Text(20, 56, "Phone: "+client.Phone)
	dob := "not recorded"
	if client.DateOfBirth != nil && *client.DateOfBirth != "" {
		dob = *client.DateOfBirth
	}
	pdf.Text(20, 64, "Date of birth: "+dob)

	pdf.Line(20, 72, pageW-20, 72)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, 84, "Checkup History")

	y := 96.0
	for i, ch := range entry.Checkups {
		if y > pageH-50 {
			pdf.AddPage()
			y = 30
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(20, y, fmt.Sprintf("Checkup %d - %s", i+1, ch.Date))
		y += 8

		pdf.SetFont("Helvetica", "", 11)
		pdf.Text(25, y, fmt.Sprintf("Weight: %s kg", formatFloat(ch.Weight)))
		pdf.Text(100, y, fmt.Sprintf("Height: %d cm", ch.Height))
		y += 7

		pdf.Text(25, y, fmt.Sprintf("BMI: %s (%s)", formatBMI(ch.BMI), models.CategoryForBMI(ch.BMI)))
		if ch.WaistCircumference != nil {
			pdf.Text(100, y, fmt.Sprintf("Waist: %d cm", *ch.WaistCircumference))
		}
		y += 7

		if ch.BloodPressure != nil && *ch.BloodPressure != "" {
			pdf.Text(25, y, fmt.Sprintf("Blood pressure: %s mmHg", *ch.BloodPressure))
			y += 7
		}
		if ch.BloodSugar != nil {
			pdf.Text(25, y, fmt.Sprintf("Blood sugar: %s mmol/L", formatFloat(*ch.BloodSugar)))
			y += 7
		}
		if ch.Cholesterol != nil {
			pdf.Text(25, y, fmt.Sprintf("Cholesterol: %s mmol/L", formatFloat(*ch.Cholesterol)))
			y += 7
		}
		if ch.Notes != nil && *ch.Notes != "" {
			pdf.Text(25, y, "Notes: "+*ch.Notes)
			y += 7
		}

		y += 8
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatBMI always shows one decimal place, matching how the value is stored.
func formatBMI(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
