package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats phone as E.164 using region for numbers typed
// without a country code. Numbers that do not parse to a valid number are
// returned trimmed but otherwise untouched.
func NormalizePhone(phone, region string) string {
	phone = TrimAndNormalize(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
