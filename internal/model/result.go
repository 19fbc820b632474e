package model

// Route is a routing destination for a processed claim
type Route string

const (
	RouteFastTrack     Route = "Fast-track"         // Low-value, complete, no red flags
	RouteManualReview  Route = "Manual Review"      // Missing data, high value, or default
	RouteInvestigation Route = "Investigation Flag" // Fraud indicators in the narrative
	RouteSpecialist    Route = "Specialist Queue"   // Injury claims needing expert assessment
)

// FastTrackThreshold is the estimated-damage ceiling for fast-track routing.
// Currency-unit-agnostic: the extractor strips symbols, the router compares
// raw numbers.
const FastTrackThreshold = 25000

// ClaimResult is the final output for one processed document. These four
// keys are the wire contract; callers serialize it as-is.
type ClaimResult struct {
	ExtractedFields  *FieldMap `json:"extractedFields"`
	MissingFields    []string  `json:"missingFields"`
	RecommendedRoute Route     `json:"recommendedRoute"`
	Reasoning        string    `json:"reasoning"`
}
