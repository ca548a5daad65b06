// Package catalog holds the doctor directory shipped with the binary.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"medq/pkg/model"
)

//go:embed doctors.json
var doctorsJSON []byte

// Load decodes the embedded catalog and checks it for duplicate or empty
// ids and out-of-range numbers.
func Load() ([]model.Doctor, error) {
	return Parse(doctorsJSON)
}

func Parse(raw []byte) ([]model.Doctor, error) {
	var doctors []model.Doctor
	if err := json.Unmarshal(raw, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctor catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doctors))
	for i, d := range doctors {
		if d.ID == "" {
			return nil, fmt.Errorf("doctor at index %d has no id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("duplicate doctor id %q", d.ID)
		}
		seen[d.ID] = struct{}{}

		if d.Rating < 0 || d.Rating > 5 {
			return nil, fmt.Errorf("doctor %q: rating %.1f outside [0,5]", d.ID, d.Rating)
		}
		if d.ReviewCount < 0 || d.Experience < 0 || d.ConsultationFee < 0 {
			return nil, fmt.Errorf("doctor %q: negative review count, experience or fee", d.ID)
		}
	}
	return doctors, nil
}
