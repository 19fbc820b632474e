package route

import (
	"fmt"
	"strings"

	"github.com/claimkit/fnoltriage/internal/model"
)

// fraudIndicators is the fixed keyword list checked against the incident
// narrative. Matching is case-insensitive substring with no tokenization,
// same as the upstream business rules. Known limitation: a keyword inside a
// longer word ("stage" in "backstage") also matches.
var fraudIndicators = []string{
	"fraud",
	"fraudulent",
	"inconsistent",
	"staged",
	"suspicious",
	"fabricated",
	"false claim",
	"deceptive",
}

// injuryCategories are the claim types that route to the specialist queue,
// matched case-insensitively as substrings of the claim type.
var injuryCategories = []string{
	"injury",
	"personal injury",
	"bodily injury",
}

// Rule is one entry in the ordered routing table: a predicate over the field
// map and validation output, and the outcome it produces when it matches.
type Rule struct {
	Name    string
	Applies func(fields *model.FieldMap, flagged []string) bool
	Outcome func(fields *model.FieldMap, flagged []string) (model.Route, string)
}

// Router applies the prioritized business rules to a validated claim.
// Rule order is an invariant: missing-data and fraud concerns outrank
// value-based fast-tracking, so an incomplete or suspicious claim can never
// fast-track no matter how small the amount.
type Router struct {
	rules []Rule
}

// NewRouter creates a router with the standard rule table
func NewRouter() *Router {
	return &Router{rules: []Rule{
		{
			Name: "missing-fields",
			Applies: func(_ *model.FieldMap, flagged []string) bool {
				return len(flagged) > 0
			},
			Outcome: func(_ *model.FieldMap, flagged []string) (model.Route, string) {
				return model.RouteManualReview, fmt.Sprintf(
					"Mandatory fields are missing: %s. Claim requires manual review to complete missing information.",
					strings.Join(flagged, ", "))
			},
		},
		{
			Name: "fraud-indicators",
			Applies: func(fields *model.FieldMap, _ []string) bool {
				return ContainsFraudIndicators(fields.Description())
			},
			Outcome: func(_ *model.FieldMap, _ []string) (model.Route, string) {
				return model.RouteInvestigation,
					"Incident description contains potential fraud indicators (e.g., 'fraud', 'inconsistent', 'staged'). " +
						"Claim flagged for investigation team review."
			},
		},
		{
			Name: "injury-claim",
			Applies: func(fields *model.FieldMap, _ []string) bool {
				return fields.ClaimType != nil && isInjuryType(*fields.ClaimType)
			},
			Outcome: func(_ *model.FieldMap, _ []string) (model.Route, string) {
				return model.RouteSpecialist,
					"Claim type involves injury or bodily harm. Routing to specialist queue for expert assessment."
			},
		},
		{
			Name: "low-value",
			Applies: func(fields *model.FieldMap, _ []string) bool {
				return fields.EstimatedDamage != nil && *fields.EstimatedDamage < model.FastTrackThreshold
			},
			Outcome: func(fields *model.FieldMap, _ []string) (model.Route, string) {
				reasons := []string{
					fmt.Sprintf("Estimated damage ($%s) is below the $%s threshold for fast-track processing",
						formatAmount(*fields.EstimatedDamage), formatAmount(model.FastTrackThreshold)),
					"All mandatory fields are present",
					"No fraud indicators detected",
					"Claim type does not require specialist review",
				}
				return model.RouteFastTrack, strings.Join(reasons, ". ") + "."
			},
		},
		{
			Name: "high-value",
			Applies: func(fields *model.FieldMap, _ []string) bool {
				return fields.EstimatedDamage != nil
			},
			Outcome: func(fields *model.FieldMap, _ []string) (model.Route, string) {
				return model.RouteManualReview, fmt.Sprintf(
					"Estimated damage ($%s) exceeds the $%s fast-track threshold. High-value claim requires manual review and approval.",
					formatAmount(*fields.EstimatedDamage), formatAmount(model.FastTrackThreshold))
			},
		},
		{
			Name: "default",
			Applies: func(_ *model.FieldMap, _ []string) bool {
				return true
			},
			Outcome: func(_ *model.FieldMap, _ []string) (model.Route, string) {
				return model.RouteManualReview,
					"Unable to determine estimated damage or claim does not meet fast-track criteria. " +
						"Routing to manual review for proper assessment."
			},
		},
	}}
}

// Route evaluates the rule table top to bottom; the first matching rule
// decides. Total function: the trailing default guarantees exactly one route
// for every input.
func (r *Router) Route(fields *model.FieldMap, flagged []string) (model.Route, string) {
	for _, rule := range r.rules {
		if rule.Applies(fields, flagged) {
			return rule.Outcome(fields, flagged)
		}
	}
	// Unreachable while the default rule is in the table.
	return model.RouteManualReview, "No routing rule matched. Routing to manual review for proper assessment."
}

// RuleSummary maps each route to the criteria that select it, for operator
// documentation output.
func (r *Router) RuleSummary() map[model.Route]string {
	return map[model.Route]string{
		model.RouteFastTrack:     fmt.Sprintf("Estimated damage < $%s, all fields present, no red flags", formatAmount(model.FastTrackThreshold)),
		model.RouteManualReview:  "Missing mandatory fields OR high-value claim OR default routing",
		model.RouteInvestigation: "Fraud indicators detected in description",
		model.RouteSpecialist:    "Claim involves injury or bodily harm",
	}
}

// ContainsFraudIndicators checks text against the fraud keyword list
func ContainsFraudIndicators(text string) bool {
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, indicator := range fraudIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func isInjuryType(claimType string) bool {
	lower := strings.ToLower(claimType)
	for _, category := range injuryCategories {
		if strings.Contains(lower, category) {
			return true
		}
	}
	return false
}

// formatAmount renders a number with thousands separators and two decimals
// ("25000" -> "25,000.00") for reasoning text.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	return sign + b.String() + fracPart
}
