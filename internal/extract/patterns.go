package extract

import (
	"regexp"
	"strings"

	"github.com/claimkit/fnoltriage/internal/model"
)

// PatternExtractor is the deterministic fallback strategy: a fixed library of
// per-field regular expressions and keyword heuristics applied directly over
// the raw text. Each field is tried independently, first match wins, and a
// field with no match stays nil. No network, no randomness — identical input
// always yields an identical FieldMap.
type PatternExtractor struct{}

// NewPatternExtractor creates a new pattern-based extractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

var (
	rePolicyNumber   = regexp.MustCompile(`(?i)Policy Number:?\s*([A-Z0-9\-]+)`)
	rePolicyholder   = regexp.MustCompile(`(?i)Policyholder Name:?\s*([A-Za-z\s]+?)(?:\n|Policy)`)
	reEffectiveDates = regexp.MustCompile(`(?i)Effective Dates?:?\s*([^\n]+?)\s+to\s+([^\n]+)`)
	reIncidentDate   = regexp.MustCompile(`(?i)(?:Date of Incident|Incident Date):?\s*([^\n]+)`)
	reIncidentTime   = regexp.MustCompile(`(?i)(?:Time of Incident|Incident Time):?\s*(\d{1,2}:\d{2})`)
	reLocation       = regexp.MustCompile(`(?i)Location:?\s*([^\n]+)`)
	reDescLabel      = regexp.MustCompile(`(?i)Description:?\s*(.*)`)
	reSectionHeader  = regexp.MustCompile(`^[A-Z][A-Z\s]+:`)
	// Colon is mandatory here so section headers like "CLAIMANT INFORMATION"
	// are not misread as a name.
	reClaimant    = regexp.MustCompile(`(?i)Claimant(?: Name)?:\s*([A-Za-z\s]+?)(?:\n|Contact|$)`)
	reContact     = regexp.MustCompile(`(?i)(?:Claimant )?Contact:?\s*([+\d\-\s()]+)`)
	reAssetType   = regexp.MustCompile(`(?i)Asset Type:?\s*([A-Za-z\s]+?)(?:\n|Make|$)`)
	reVIN         = regexp.MustCompile(`(?i)VIN:?\s*([A-Z0-9]+)`)
	reDamage      = regexp.MustCompile(`(?i)Estimated Damage:?\s*\$?([\d,\.]+)`)
	reClaimType   = regexp.MustCompile(`(?i)Claim Type:?\s*([A-Za-z\s\-]+?)(?:\n|Date|$)`)
	reAttachments = regexp.MustCompile(`(?is)ATTACHMENTS?\s*-+\s*(.*?)(?:\n\n|ADDITIONAL|$)`)
	reListNumber  = regexp.MustCompile(`^\d+\.\s*`)
)

// Extract parses document text into a FieldMap using pattern matching
func (e *PatternExtractor) Extract(text string) *model.FieldMap {
	fields := model.NewFieldMap()

	if m := rePolicyNumber.FindStringSubmatch(text); m != nil {
		fields.PolicyNumber = model.Str(m[1])
	}

	if m := rePolicyholder.FindStringSubmatch(text); m != nil {
		fields.PolicyholderName = model.Str(strings.TrimSpace(m[1]))
	}

	if m := reEffectiveDates.FindStringSubmatch(text); m != nil {
		fields.EffectiveDates.Start = model.Str(NormalizeDate(m[1]))
		fields.EffectiveDates.End = model.Str(NormalizeDate(m[2]))
	}

	if m := reIncidentDate.FindStringSubmatch(text); m != nil {
		fields.IncidentDate = model.Str(NormalizeDate(m[1]))
	}

	if m := reIncidentTime.FindStringSubmatch(text); m != nil {
		fields.IncidentTime = model.Str(m[1])
	}

	if m := reLocation.FindStringSubmatch(text); m != nil {
		fields.IncidentLocation = model.Str(strings.TrimSpace(m[1]))
	}

	if desc := extractDescription(text); desc != "" {
		fields.IncidentDescription = model.Str(desc)
	}

	if m := reClaimant.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			fields.ClaimantName = model.Str(name)
		}
	}

	if m := reContact.FindStringSubmatch(text); m != nil {
		if contact := strings.TrimSpace(m[1]); contact != "" {
			fields.ClaimantContact = model.Str(contact)
		}
	}

	if m := reAssetType.FindStringSubmatch(text); m != nil {
		fields.AssetType = model.Str(strings.TrimSpace(m[1]))
	}

	if m := reVIN.FindStringSubmatch(text); m != nil {
		fields.AssetID = model.Str("VIN: " + m[1])
	}

	if m := reDamage.FindStringSubmatch(text); m != nil {
		if amount := ParseCurrency(m[1]); amount != nil {
			fields.EstimatedDamage = amount
			fields.InitialEstimate = amount
		}
	}

	if m := reClaimType.FindStringSubmatch(text); m != nil {
		fields.ClaimType = model.Str(strings.TrimSpace(m[1]))
	}

	fields.Attachments = extractAttachments(text)

	return fields
}

// extractDescription captures the narrative: the text following the
// Description label, continuing over subsequent lines until a blank line or
// an ALL-CAPS section header. Mixed-case labels inside the narrative are
// deliberately not treated as boundaries.
func extractDescription(text string) string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		m := reDescLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var parts []string
		if first := strings.TrimSpace(m[1]); first != "" {
			parts = append(parts, first)
		}

		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if strings.TrimSpace(next) == "" || reSectionHeader.MatchString(next) {
				break
			}
			parts = append(parts, strings.TrimSpace(next))
		}

		return strings.Join(parts, "\n")
	}

	return ""
}

// extractAttachments parses the numbered list under an ATTACHMENTS header
func extractAttachments(text string) []string {
	attachments := []string{}

	m := reAttachments.FindStringSubmatch(text)
	if m == nil {
		return attachments
	}

	for _, line := range strings.Split(strings.TrimSpace(m[1]), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "---") {
			continue
		}
		attachments = append(attachments, reListNumber.ReplaceAllString(line, ""))
	}

	return attachments
}
