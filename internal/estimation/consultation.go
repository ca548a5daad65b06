// Package estimation derives the consultation-time prediction and the wait
// estimate shown for a booking. Both are fixed rule tables, not learned
// models.
package estimation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"medq/pkg/model"
)

const (
	defaultBaseMinutes = 10
	minRangeFloor      = 5
	maxRangeCeiling    = 15

	baseAccuracy = 75
	maxAccuracy  = 95
)

const (
	FactorSenior          = "Senior doctor efficiency"
	FactorJunior          = "Thorough junior consultation"
	FactorHighlyRated     = "Highly rated efficiency"
	FactorComplexSymptoms = "Complex symptoms"
	FactorSimpleSymptoms  = "Brief symptom description"
	FactorPeakHours       = "Peak hours"
	FactorHighDemandDay   = "High demand day"
)

var baseMinutesBySpecialty = map[string]int{
	"Cardiologist":       12,
	"Neurologist":        15,
	"Dermatologist":      8,
	"Pediatrician":       10,
	"Orthopedic Surgeon": 13,
	"Gastroenterologist": 11,
}

// BaseMinutes returns the specialty's starting duration, 10 for unknown specialties.
func BaseMinutes(specialty string) int {
	if m, ok := baseMinutesBySpecialty[specialty]; ok {
		return m
	}
	return defaultBaseMinutes
}

// PredictConsultation applies the rule table in order. Rules whose input
// cannot be parsed (a malformed time or date) are skipped.
func PredictConsultation(doctor model.Doctor, appt model.Appointment) model.Prediction {
	base := BaseMinutes(doctor.Specialty)
	factors := []string{}

	switch {
	case doctor.Experience > 15:
		base--
		factors = append(factors, FactorSenior)
	case doctor.Experience < 5:
		base += 2
		factors = append(factors, FactorJunior)
	}

	if doctor.Rating >= 4.8 {
		base--
		factors = append(factors, FactorHighlyRated)
	}

	symptomsLen := utf8.RuneCountInString(strings.TrimSpace(appt.Symptoms))
	if symptomsLen > 0 {
		switch {
		case symptomsLen > 100:
			base += 3
			factors = append(factors, FactorComplexSymptoms)
		case symptomsLen < 50:
			base--
			factors = append(factors, FactorSimpleSymptoms)
		}
	}

	if t, err := time.Parse(model.TimeLayout, appt.Time); err == nil {
		if h := t.Hour(); h < 10 || h > 16 {
			base++
			factors = append(factors, FactorPeakHours)
		}
	}

	if d, err := time.Parse(model.DateLayout, appt.Date); err == nil {
		if wd := d.Weekday(); wd == time.Monday || wd == time.Friday {
			base++
			factors = append(factors, FactorHighDemandDay)
		}
	}

	minMinutes := max(minRangeFloor, base-2)
	maxMinutes := min(maxRangeCeiling, base+3)

	accuracy := baseAccuracy
	if symptomsLen > 0 {
		accuracy += 10
	}
	if doctor.ReviewCount > 100 {
		accuracy += 10
	}
	if doctor.Experience > 10 {
		accuracy += 5
	}

	p := model.Prediction{
		AppointmentID: appt.ID,
		MinMinutes:    minMinutes,
		MaxMinutes:    maxMinutes,
		Inverted:      minMinutes > maxMinutes,
		Accuracy:      min(accuracy, maxAccuracy),
		Factors:       factors,
	}
	p.Range = FormatRange(p)
	return p
}

// FormatRange renders the range for display. Crossed bounds only happen
// when the adjusted base exceeds the ceiling, so they read as "over max".
func FormatRange(p model.Prediction) string {
	switch {
	case p.Inverted:
		return fmt.Sprintf("over %d minutes", p.MaxMinutes)
	case p.MinMinutes == p.MaxMinutes:
		return fmt.Sprintf("%d minutes", p.MinMinutes)
	default:
		return fmt.Sprintf("%d-%d minutes", p.MinMinutes, p.MaxMinutes)
	}
}
