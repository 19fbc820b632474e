package validate

import (
	"regexp"

	"github.com/claimkit/fnoltriage/internal/extract"
	"github.com/claimkit/fnoltriage/internal/model"
)

// MandatoryFields lists the 13 fields a claim needs before it can leave
// manual review, in reporting order. Static and never mutated at runtime;
// Validate output follows this order, not the field map's.
var MandatoryFields = []string{
	"policyNumber",
	"policyholderName",
	"effectiveDates.start",
	"effectiveDates.end",
	"incidentDate",
	"incidentTime",
	"incidentLocation",
	"incidentDescription",
	"claimantName",
	"assetType",
	"assetId",
	"estimatedDamage",
	"claimType",
}

// displayNames maps field paths to human-readable labels for reasoning text
// and progress output.
var displayNames = map[string]string{
	"policyNumber":         "Policy Number",
	"policyholderName":     "Policyholder Name",
	"effectiveDates.start": "Policy Start Date",
	"effectiveDates.end":   "Policy End Date",
	"incidentDate":         "Incident Date",
	"incidentTime":         "Incident Time",
	"incidentLocation":     "Incident Location",
	"incidentDescription":  "Incident Description",
	"claimantName":         "Claimant Name",
	"claimantContact":      "Claimant Contact",
	"thirdParties":         "Third Parties",
	"assetType":            "Asset Type",
	"assetId":              "Asset ID",
	"estimatedDamage":      "Estimated Damage",
	"claimType":            "Claim Type",
	"attachments":          "Attachments",
	"initialEstimate":      "Initial Estimate",
}

var timeOfDay = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Validator checks extracted fields for completeness and consistency
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the fields that block straight-through processing:
// first every mandatory field that is absent (nil, empty string, or empty
// list), in MandatoryFields order, then any present-but-invalid values.
// Pure function — no side effects, never fails; a claim with problems routes
// to manual review, it does not raise.
func (v *Validator) Validate(fields *model.FieldMap) []string {
	flagged := []string{}
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			flagged = append(flagged, path)
		}
	}

	for _, path := range MandatoryFields {
		if !isPresent(fields, path) {
			add(path)
		}
	}

	// Consistency checks on values that are present. Surfaced the same way
	// as missing fields so the router always has the complete picture.
	for _, path := range []string{"effectiveDates.start", "effectiveDates.end", "incidentDate"} {
		if s, ok := stringAt(fields, path); ok && !extract.IsCanonicalDate(s) {
			add(path)
		}
	}

	if fields.IncidentTime != nil && !timeOfDay.MatchString(*fields.IncidentTime) {
		add("incidentTime")
	}

	if fields.EstimatedDamage != nil && *fields.EstimatedDamage < 0 {
		add("estimatedDamage")
	}

	return flagged
}

// isPresent resolves a dotted path and reports whether the value is set and
// non-empty. Zero is a valid number; "" and empty lists are not valid values.
func isPresent(fields *model.FieldMap, path string) bool {
	value, ok := fields.Field(path)
	if !ok || value == nil {
		return false
	}

	switch val := value.(type) {
	case string:
		return val != ""
	case []string:
		return len(val) > 0
	default:
		return true
	}
}

func stringAt(fields *model.FieldMap, path string) (string, bool) {
	value, ok := fields.Field(path)
	if !ok || value == nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok && s != ""
}

// DisplayName converts a field path to its human-readable label
func DisplayName(path string) string {
	if name, ok := displayNames[path]; ok {
		return name
	}
	return path
}
