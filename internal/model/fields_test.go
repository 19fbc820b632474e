package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFieldMap_Field(t *testing.T) {
	f := NewFieldMap()
	f.PolicyNumber = Str("POL-1")
	f.EffectiveDates.Start = Str("2023-01-01")
	f.EstimatedDamage = Num(15000)
	f.Attachments = []string{"a.jpg"}

	cases := []struct {
		path string
		want interface{}
	}{
		{"policyNumber", "POL-1"},
		{"effectiveDates.start", "2023-01-01"},
		{"effectiveDates.end", nil},
		{"estimatedDamage", float64(15000)},
		{"claimType", nil},
	}

	for _, c := range cases {
		got, ok := f.Field(c.path)
		if !ok {
			t.Errorf("Field(%q): expected known path", c.path)
			continue
		}
		if got != c.want {
			t.Errorf("Field(%q) = %v, want %v", c.path, got, c.want)
		}
	}

	if v, ok := f.Field("attachments"); !ok || len(v.([]string)) != 1 {
		t.Errorf("Field(attachments) = %v, ok=%v", v, ok)
	}

	if _, ok := f.Field("noSuchField"); ok {
		t.Error("unknown path must report ok=false")
	}
	if _, ok := f.Field("effectiveDates"); ok {
		t.Error("intermediate path without a leaf must report ok=false")
	}
}

func TestFieldMap_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewFieldMap())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)

	// Unset scalars serialize as null, lists as [].
	if !strings.Contains(s, `"policyNumber":null`) {
		t.Errorf("expected null policyNumber, got %s", s)
	}
	if !strings.Contains(s, `"thirdParties":[]`) || !strings.Contains(s, `"attachments":[]`) {
		t.Errorf("expected empty arrays for lists, got %s", s)
	}
	if !strings.Contains(s, `"assetId"`) {
		t.Errorf("expected assetId wire name, got %s", s)
	}
}

func TestFieldMap_UnknownKeysDroppedOnDecode(t *testing.T) {
	f := NewFieldMap()
	err := json.Unmarshal([]byte(`{"policyNumber":"P-1","hallucinated":"yes"}`), f)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.PolicyNumber == nil || *f.PolicyNumber != "P-1" {
		t.Errorf("unexpected policyNumber: %v", f.PolicyNumber)
	}
}

func TestFieldMap_PopulatedCount(t *testing.T) {
	f := NewFieldMap()
	if got := f.PopulatedCount(); got != 0 {
		t.Errorf("empty map: expected 0, got %d", got)
	}

	f.PolicyNumber = Str("POL-1")
	f.EstimatedDamage = Num(0) // zero is a value
	f.Attachments = []string{"a.jpg"}
	f.ClaimantName = Str("") // empty string is not

	if got := f.PopulatedCount(); got != 3 {
		t.Errorf("expected 3 populated fields, got %d", got)
	}
}

func TestFieldMap_Description(t *testing.T) {
	f := NewFieldMap()
	if f.Description() != "" {
		t.Error("expected empty description for unset field")
	}
	f.IncidentDescription = Str("collision")
	if f.Description() != "collision" {
		t.Errorf("unexpected description: %q", f.Description())
	}
}

func TestAllFieldPathsResolvable(t *testing.T) {
	f := NewFieldMap()
	for _, path := range AllFieldPaths {
		if _, ok := f.Field(path); !ok {
			t.Errorf("path %q is listed but not resolvable", path)
		}
	}
}
