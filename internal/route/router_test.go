package route

import (
	"strings"
	"testing"

	"github.com/claimkit/fnoltriage/internal/model"
)

// completeClaim builds a field map with every mandatory field populated and
// no red flags, suitable as a baseline to mutate per test.
func completeClaim() *model.FieldMap {
	fields := model.NewFieldMap()
	fields.PolicyNumber = model.Str("POL-2023-458912")
	fields.PolicyholderName = model.Str("Sarah Mitchell")
	fields.EffectiveDates.Start = model.Str("2023-01-01")
	fields.EffectiveDates.End = model.Str("2024-01-01")
	fields.IncidentDate = model.Str("2023-06-15")
	fields.IncidentTime = model.Str("14:30")
	fields.IncidentLocation = model.Str("5th Avenue and Main Street, Springfield")
	fields.IncidentDescription = model.Str("Rear-end collision at a red light. Moderate damage to both vehicles.")
	fields.ClaimantName = model.Str("Sarah Mitchell")
	fields.AssetType = model.Str("Vehicle")
	fields.AssetID = model.Str("VIN: 4T1BF1FK5HU123456")
	fields.EstimatedDamage = model.Num(15000)
	fields.ClaimType = model.Str("Auto Collision")
	return fields
}

func TestRoute_LowValueFastTrack(t *testing.T) {
	router := NewRouter()

	route, reasoning := router.Route(completeClaim(), nil)

	if route != model.RouteFastTrack {
		t.Fatalf("expected Fast-track, got %q (%s)", route, reasoning)
	}
	for _, want := range []string{
		"$15,000.00",
		"$25,000.00",
		"All mandatory fields are present",
		"No fraud indicators detected",
	} {
		if !strings.Contains(reasoning, want) {
			t.Errorf("reasoning missing %q: %s", want, reasoning)
		}
	}
}

func TestRoute_HighValueManualReview(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.EstimatedDamage = model.Num(75000)

	route, reasoning := router.Route(fields, nil)

	if route != model.RouteManualReview {
		t.Fatalf("expected Manual Review, got %q", route)
	}
	if !strings.Contains(reasoning, "$75,000.00") || !strings.Contains(reasoning, "exceeds") {
		t.Errorf("unexpected reasoning: %s", reasoning)
	}
}

func TestRoute_ThresholdIsExclusive(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.EstimatedDamage = model.Num(model.FastTrackThreshold)

	// Exactly at the threshold is not below it.
	route, _ := router.Route(fields, nil)
	if route != model.RouteManualReview {
		t.Errorf("damage == threshold: expected Manual Review, got %q", route)
	}

	fields.EstimatedDamage = model.Num(model.FastTrackThreshold - 0.01)
	route, _ = router.Route(fields, nil)
	if route != model.RouteFastTrack {
		t.Errorf("damage just under threshold: expected Fast-track, got %q", route)
	}
}

func TestRoute_FraudIndicators(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.IncidentDescription = model.Str(
		"The damage pattern looks staged and suspicious, with inconsistent statements from the driver.")

	route, reasoning := router.Route(fields, nil)

	if route != model.RouteInvestigation {
		t.Fatalf("expected Investigation Flag, got %q", route)
	}
	if !strings.Contains(reasoning, "fraud indicators") {
		t.Errorf("unexpected reasoning: %s", reasoning)
	}
}

func TestRoute_InjurySpecialistQueue(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.ClaimType = model.Str("Bodily Injury")
	fields.EstimatedDamage = model.Num(5000)

	// Injury outranks low value even though $5,000 would fast-track.
	route, reasoning := router.Route(fields, nil)

	if route != model.RouteSpecialist {
		t.Fatalf("expected Specialist Queue, got %q", route)
	}
	if !strings.Contains(reasoning, "specialist") {
		t.Errorf("unexpected reasoning: %s", reasoning)
	}
}

func TestRoute_MissingFieldsDominate(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.IncidentDescription = model.Str("The claim appears fraudulent and staged.")
	fields.ClaimType = model.Str("Personal Injury")

	// Missing mandatory data outranks both fraud and injury.
	route, reasoning := router.Route(fields, []string{"policyNumber", "incidentDate"})

	if route != model.RouteManualReview {
		t.Fatalf("expected Manual Review, got %q", route)
	}
	if !strings.Contains(reasoning, "policyNumber, incidentDate") {
		t.Errorf("reasoning should list the missing fields: %s", reasoning)
	}
}

func TestRoute_FraudDominatesInjuryAndValue(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.IncidentDescription = model.Str("Filing what looks like a false claim.")
	fields.ClaimType = model.Str("Bodily Injury")
	fields.EstimatedDamage = model.Num(1000)

	route, _ := router.Route(fields, nil)

	if route != model.RouteInvestigation {
		t.Errorf("expected Investigation Flag, got %q", route)
	}
}

func TestRoute_NoDamageDefaultsToManualReview(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.EstimatedDamage = nil

	route, reasoning := router.Route(fields, nil)

	if route != model.RouteManualReview {
		t.Fatalf("expected Manual Review, got %q", route)
	}
	if !strings.Contains(reasoning, "Unable to determine estimated damage") {
		t.Errorf("unexpected reasoning: %s", reasoning)
	}
}

func TestRoute_ZeroDamageFastTracks(t *testing.T) {
	router := NewRouter()
	fields := completeClaim()
	fields.EstimatedDamage = model.Num(0)

	route, _ := router.Route(fields, nil)

	if route != model.RouteFastTrack {
		t.Errorf("expected Fast-track for $0 damage, got %q", route)
	}
}

func TestContainsFraudIndicators(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", false},
		{"Vehicle struck from behind at a red light.", false},
		{"The report seems FRAUDULENT.", true},
		{"Statements were inconsistent with the photos.", true},
		{"Possibly a staged accident.", true},
		{"Nothing suspicious here.", true}, // substring match, no negation handling
		{"Deceptive reporting suspected.", true},
	}

	for _, c := range cases {
		if got := ContainsFraudIndicators(c.text); got != c.want {
			t.Errorf("ContainsFraudIndicators(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestIsInjuryType(t *testing.T) {
	cases := []struct {
		claimType string
		want      bool
	}{
		{"Bodily Injury", true},
		{"personal injury", true},
		{"Auto Collision with Injury", true},
		{"Auto Collision", false},
		{"Property Damage", false},
	}

	for _, c := range cases {
		if got := isInjuryType(c.claimType); got != c.want {
			t.Errorf("isInjuryType(%q) = %v, want %v", c.claimType, got, c.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{15000, "15,000.00"},
		{25000, "25,000.00"},
		{1234567.89, "1,234,567.89"},
		{-4500, "-4,500.00"},
	}

	for _, c := range cases {
		if got := formatAmount(c.in); got != c.want {
			t.Errorf("formatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
