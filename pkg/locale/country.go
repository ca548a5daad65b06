package locale

import (
	"strings"
)

const (
	DefaultTimezone = "Asia/Kolkata"
	DefaultRegion   = "IN"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "IN", "US")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+91", "91"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "Asia/Kolkata")
}

var (
	Countries = map[string]Country{
		"IN": {
			Code:            "IN",
			Name:            "India",
			PhonePrefixes:   []string{"+91", "91"},
			DefaultTimezone: "Asia/Kolkata",
		},
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/New_York",
		},
		"GB": {
			Code:            "GB",
			Name:            "United Kingdom",
			PhonePrefixes:   []string{"+44", "44"},
			DefaultTimezone: "Europe/London",
		},
	}

	TimeZoneTags = map[string][]string{
		"IN": {"Asia/Kolkata", "Asia/Calcutta"},
		"US": {"America/New_York", "America/Chicago", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
		"GB": {"Europe/London", "GB"},
	}
)

// DetectRegion maps a clinic timezone to the region used when parsing
// locally written phone numbers.
func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}
