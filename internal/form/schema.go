package form

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// Normalize validates a raw sparse payload against the schema and returns the
// canonical values for exactly the keys that were given. Unknown keys and
// empty values are dropped, never reported: this is what makes the gateway
// safe to call with rapidly-changing partial payloads. Shape violations on
// present values are collected into field errors.
func Normalize(raw map[string]any) (domain.FormValues, []domain.FieldError) {
	values := make(domain.FormValues, len(raw))
	var errs []domain.FieldError

	for key, rawVal := range raw {
		spec, ok := Fields[key]
		if !ok {
			continue // unknown key: dropped
		}

		val, err := normalizeValue(spec, rawVal)
		if err != nil {
			errs = append(errs, domain.FieldError{
				Field:   key,
				Section: spec.Section,
				Message: err.Error(),
			})
			continue
		}
		if val == nil {
			continue // empty value: dropped, never overwrites
		}
		values[key] = val
	}

	return values, errs
}

// normalizeValue coerces one raw value into its canonical form.
// A nil, nil return means the value is empty and should be dropped silently.
func normalizeValue(spec Field, raw any) (any, error) {
	switch spec.Kind {
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("must be a boolean")
		}
		return b, nil

	case KindStringList:
		list, err := toStringList(raw)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, nil
		}
		if len(list) > spec.maxItems() {
			return nil, fmt.Errorf("max %d items", spec.maxItems())
		}
		for _, item := range list {
			if len(item) > spec.maxLen() {
				return nil, fmt.Errorf("items max %d characters", spec.maxLen())
			}
		}
		return list, nil
	}

	// Everything else arrives as a string.
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	switch spec.Kind {
	case KindString:
		if len(s) > spec.maxLen() {
			return nil, fmt.Errorf("max %d characters", spec.maxLen())
		}
		return s, nil

	case KindEmail:
		if len(s) > spec.maxLen() {
			return nil, fmt.Errorf("max %d characters", spec.maxLen())
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return nil, fmt.Errorf("must be a valid email address")
		}
		return s, nil

	case KindDate:
		if _, err := time.Parse(dateLayout, s); err != nil {
			return nil, fmt.Errorf("must be a date in YYYY-MM-DD format")
		}
		return s, nil

	case KindEnum:
		for _, allowed := range spec.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, fmt.Errorf("must be one of: %s", strings.Join(spec.Enum, ", "))

	case KindUUID:
		if _, err := uuid.Parse(s); err != nil {
			return nil, fmt.Errorf("must be a valid UUID")
		}
		return s, nil
	}

	return nil, fmt.Errorf("unsupported field kind")
}

func toStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return trimList(v), nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a list of strings")
			}
			list = append(list, s)
		}
		return trimList(list), nil
	}
	return nil, fmt.Errorf("must be a list of strings")
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MissingRequired returns one field error per required field that is absent
// from values, grouped by section for user-facing reporting. Boolean answers
// count as present whichever way they were answered; whether the declaration
// is actually accepted is a separate submission precondition.
func MissingRequired(values domain.FormValues) []domain.FieldError {
	var errs []domain.FieldError
	for key, spec := range Fields {
		if !spec.Required {
			continue
		}
		if _, ok := values[key]; ok {
			continue
		}
		errs = append(errs, domain.FieldError{
			Field:   key,
			Section: spec.Section,
			Message: "required",
		})
	}
	return errs
}
