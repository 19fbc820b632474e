package model

// FieldMap is the structured view of one FNOL document.
// The schema is closed: decoding an AI response into this struct silently
// drops any key outside the known vocabulary, so unrecognized fields never
// reach the validator or router. A nil pointer means "not found in the
// document", which is distinct from an empty string the document contained.
//
// A FieldMap is built once by extraction and is read-only afterwards.
type FieldMap struct {
	PolicyNumber        *string   `json:"policyNumber"`
	PolicyholderName    *string   `json:"policyholderName"`
	EffectiveDates      DateRange `json:"effectiveDates"`
	IncidentDate        *string   `json:"incidentDate"`
	IncidentTime        *string   `json:"incidentTime"`
	IncidentLocation    *string   `json:"incidentLocation"`
	IncidentDescription *string   `json:"incidentDescription"`
	ClaimantName        *string   `json:"claimantName"`
	ClaimantContact     *string   `json:"claimantContact"`
	ThirdParties        []string  `json:"thirdParties"`
	AssetType           *string   `json:"assetType"`
	AssetID             *string   `json:"assetId"`
	EstimatedDamage     *float64  `json:"estimatedDamage"`
	ClaimType           *string   `json:"claimType"`
	Attachments         []string  `json:"attachments"`
	InitialEstimate     *float64  `json:"initialEstimate"`
}

// DateRange is the policy coverage window. Dates are normalized to
// YYYY-MM-DD strings by the extractor.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// NewFieldMap returns a FieldMap with every field unset. Slices start empty
// rather than nil so the JSON output shows [] instead of null, matching the
// wire format downstream consumers expect.
func NewFieldMap() *FieldMap {
	return &FieldMap{
		ThirdParties: []string{},
		Attachments:  []string{},
	}
}

// Field resolves a dotted path (e.g. "effectiveDates.start") against the
// field map. It returns the value and whether the path names a known field.
// Unset pointers resolve to a nil value with ok=true.
func (f *FieldMap) Field(path string) (interface{}, bool) {
	switch path {
	case "policyNumber":
		return strValue(f.PolicyNumber), true
	case "policyholderName":
		return strValue(f.PolicyholderName), true
	case "effectiveDates.start":
		return strValue(f.EffectiveDates.Start), true
	case "effectiveDates.end":
		return strValue(f.EffectiveDates.End), true
	case "incidentDate":
		return strValue(f.IncidentDate), true
	case "incidentTime":
		return strValue(f.IncidentTime), true
	case "incidentLocation":
		return strValue(f.IncidentLocation), true
	case "incidentDescription":
		return strValue(f.IncidentDescription), true
	case "claimantName":
		return strValue(f.ClaimantName), true
	case "claimantContact":
		return strValue(f.ClaimantContact), true
	case "thirdParties":
		return f.ThirdParties, true
	case "assetType":
		return strValue(f.AssetType), true
	case "assetId":
		return strValue(f.AssetID), true
	case "estimatedDamage":
		return numValue(f.EstimatedDamage), true
	case "claimType":
		return strValue(f.ClaimType), true
	case "attachments":
		return f.Attachments, true
	case "initialEstimate":
		return numValue(f.InitialEstimate), true
	default:
		return nil, false
	}
}

// Description returns the incident narrative, or "" when absent.
func (f *FieldMap) Description() string {
	if f.IncidentDescription == nil {
		return ""
	}
	return *f.IncidentDescription
}

// PopulatedCount reports how many fields carry a value, for progress output.
func (f *FieldMap) PopulatedCount() int {
	count := 0
	for _, path := range AllFieldPaths {
		v, _ := f.Field(path)
		switch val := v.(type) {
		case nil:
		case string:
			if val != "" {
				count++
			}
		case []string:
			if len(val) > 0 {
				count++
			}
		default:
			count++
		}
	}
	return count
}

// AllFieldPaths lists every addressable field path in schema order.
var AllFieldPaths = []string{
	"policyNumber",
	"policyholderName",
	"effectiveDates.start",
	"effectiveDates.end",
	"incidentDate",
	"incidentTime",
	"incidentLocation",
	"incidentDescription",
	"claimantName",
	"claimantContact",
	"thirdParties",
	"assetType",
	"assetId",
	"estimatedDamage",
	"claimType",
	"attachments",
	"initialEstimate",
}

func strValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func numValue(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// Str returns a pointer to s, for building field maps in code.
func Str(s string) *string { return &s }

// Num returns a pointer to n, for building field maps in code.
func Num(n float64) *float64 { return &n }
