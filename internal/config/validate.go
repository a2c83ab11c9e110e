package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Payment.validate(); err != nil {
		return fmt.Errorf("payment: %w", err)
	}

	if c.Docstore.MaxSizeBytes <= 0 {
		return fmt.Errorf("docstore.max_size_bytes must be > 0 (got %d)", c.Docstore.MaxSizeBytes)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (p *PaymentConfig) validate() error {
	if p.ApplicationFee <= 0 {
		return fmt.Errorf("application_fee must be > 0 (got %d)", p.ApplicationFee)
	}
	if p.PerTravelerFee <= 0 {
		return fmt.Errorf("per_traveler_fee must be > 0 (got %d)", p.PerTravelerFee)
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code (got %q)", p.Currency)
	}
	if p.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %v)", p.PollInterval)
	}
	if p.PollMaxAttempts <= 0 {
		return fmt.Errorf("poll_max_attempts must be > 0 (got %d)", p.PollMaxAttempts)
	}
	return nil
}
