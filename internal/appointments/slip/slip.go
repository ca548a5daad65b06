// Package slip renders the printable booking confirmation.
package slip

import (
	"bytes"
	"fmt"
	"strconv"

	"medq/pkg/model"

	"github.com/jung-kurt/gofpdf"
)

const ContentType = "application/pdf"

// Filename is the download name offered for an appointment's slip.
func Filename(appt model.Appointment) string {
	return fmt.Sprintf("appointment-%s.pdf", appt.ID)
}

// Render builds a one-page A4 slip. doctor may be nil when the booking
// references a doctor no longer in the catalog; the denormalized name on the
// booking is used instead.
func Render(appt model.Appointment, doctor *model.Doctor) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Appointment "+appt.ID, true)
	pdf.AddPage()

	// Core fonts are cp1252; names may carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(20, 60, 120)
	pdf.CellFormat(0, 10, "Appointment Confirmation", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 40)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 22, "#"+strconv.Itoa(appt.TokenNumber), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Token number", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	doctorName, specialty := appt.DoctorName, ""
	if doctor != nil {
		doctorName, specialty = doctor.Name, doctor.Specialty
	}

	addDetail(pdf, "Booking ID", appt.ID, tr)
	addDetail(pdf, "Doctor", doctorName, tr)
	if specialty != "" {
		addDetail(pdf, "Specialty", specialty, tr)
	}
	addDetail(pdf, "Date", appt.Date, tr)
	addDetail(pdf, "Time", appt.Time, tr)
	addDetail(pdf, "Patient", appt.PatientName, tr)
	if appt.PatientAge != "" {
		addDetail(pdf, "Age", appt.PatientAge, tr)
	}
	addDetail(pdf, "Phone", appt.PatientPhone, tr)
	addDetail(pdf, "Status", appt.Status, tr)

	if appt.Symptoms != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Symptoms", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(appt.Symptoms), "1", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 5, "Please arrive 30 minutes before your estimated turn and bring this slip.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render appointment slip: %w", err)
	}
	return buf.Bytes(), nil
}

func addDetail(pdf *gofpdf.Fpdf, label, value string, tr func(string) string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(40, 8, label, "1", 0, "", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, tr(value), "1", 1, "", false, 0, "")
}
