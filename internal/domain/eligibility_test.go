package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		nationality string
		authority   string
		birth       string
		wantErr     error
	}{
		{"passport from nationality country", "Nigerian", "Nigerian", "Ghana", nil},
		{"born in nationality country", "Nigerian", "Ghana", "Nigerian", nil},
		{"case and spacing ignored", " nigerian ", "NIGERIAN", "Ghana", nil},
		{"both mismatch", "Japanese", "Brazil", "Brazil", ErrIneligible},
		{"missing nationality is not a verdict", "", "Brazil", "Brazil", nil},
		{"missing authority is not a verdict", "Japanese", "", "Brazil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := FormValues{}
			if tt.nationality != "" {
				fields["nationality"] = tt.nationality
			}
			if tt.authority != "" {
				fields["issuing_authority"] = tt.authority
			}
			if tt.birth != "" {
				fields["country_of_birth"] = tt.birth
			}

			err := CheckEligibility(fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
