package urlutil

import (
	"fmt"
	"strings"

	"github.com/jongio/weburl/host"
)

const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

// ValidateDomain checks a bare DNS name such as "api.example.com". It rejects
// schemes, ports, empty labels and anything outside letters, digits and
// hyphens. "localhost" is accepted.
func ValidateDomain(domain string) error {
	domain = strings.TrimSpace(domain)

	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	if strings.Contains(domain, "://") {
		return fmt.Errorf("domain should not include protocol")
	}
	if strings.Contains(domain, ":") {
		return fmt.Errorf("domain should not include port")
	}
	if len(domain) > maxDomainLength {
		return fmt.Errorf("domain exceeds maximum length of %d characters", maxDomainLength)
	}

	d := host.Domain(strings.ToLower(domain))
	if d == "localhost" {
		return nil
	}

	labels := d.Labels()
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return err
		}
	}
	if len(labels) < 2 {
		return fmt.Errorf("domain must have at least one dot")
	}
	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("domain has empty label")
	}
	if len(label) > maxLabelLength {
		return fmt.Errorf("domain label exceeds %d characters", maxLabelLength)
	}
	for _, r := range label {
		if !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '-' {
			return fmt.Errorf("domain label contains invalid character %q", r)
		}
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return fmt.Errorf("domain label cannot start or end with hyphen")
	}
	return nil
}
