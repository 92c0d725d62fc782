package enums

import "fmt"

// Organization scopes an account to one of the venue's two operations.
type Organization string

const (
	OrganizationEDSU     Organization = "EDSU"
	OrganizationTokoBuku Organization = "TokoBuku"
)

var validOrganizations = []Organization{
	OrganizationEDSU,
	OrganizationTokoBuku,
}

// String implements fmt.Stringer.
func (o Organization) String() string {
	return string(o)
}

// IsValid reports whether the value is a known Organization.
func (o Organization) IsValid() bool {
	for _, candidate := range validOrganizations {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrganization converts raw input into an Organization.
func ParseOrganization(value string) (Organization, error) {
	for _, candidate := range validOrganizations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid organization %q", value)
}
