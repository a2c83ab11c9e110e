package domain

import (
	"errors"
	"strings"
)

// ErrIneligible blocks submission for a reason distinct from an incomplete
// form: the applicant's documents do not satisfy the nationality cross-check.
var ErrIneligible = errors.New("not eligible for this visa")

// EligibilityReason is the user-facing explanation attached to an
// ErrIneligible outcome.
const EligibilityReason = "your passport must be issued by the country of your nationality, " +
	"or your country of birth must match your nationality"

// CheckEligibility cross-checks nationality against the passport issuing
// authority and the country of birth. The application is eligible when the
// passport was issued by the country of nationality, or, for applicants
// holding a passport issued elsewhere, when they were born in the country of
// their nationality. Comparison is case-insensitive on the trimmed values.
func CheckEligibility(fields FormValues) error {
	nationality := canon(fields.Str("nationality"))
	authority := canon(fields.Str("issuing_authority"))
	birthCountry := canon(fields.Str("country_of_birth"))

	if nationality == "" || authority == "" || birthCountry == "" {
		// Missing inputs are an incomplete-form problem, not an
		// eligibility verdict; the completeness check reports them.
		return nil
	}

	if nationality == authority || nationality == birthCountry {
		return nil
	}

	return ErrIneligible
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
