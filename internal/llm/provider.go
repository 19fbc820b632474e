package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claimkit/fnoltriage/internal/model"
)

// Provider defines the interface for AI extraction backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractFields asks the backend to pull the FNOL schema out of raw
	// document text. Implementations make exactly one attempt; the caller
	// owns fallback behavior.
	ExtractFields(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for AI field extraction
type ExtractRequest struct {
	// DocumentText is the raw FNOL text to extract from
	DocumentText string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExtractResponse contains the backend's parsed extraction output
type ExtractResponse struct {
	// Fields is the schema-validated field map decoded from the response
	Fields *model.FieldMap

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds AI backend configuration
type Config struct {
	// Provider name: "gemini", "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Gemini/OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, tests)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 2000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}

// extractionSystemPrompt frames every backend conversation the same way so
// extraction quality does not depend on provider-specific defaults.
const extractionSystemPrompt = "You are an insurance claims processing assistant that extracts structured fields from FNOL documents and returns only valid JSON."

// BuildPrompt constructs the extraction prompt with the fixed schema
// description. The schema is the contract: field names, types, and the
// null-for-missing convention are spelled out so responses decode straight
// into model.FieldMap.
func BuildPrompt(documentText string) string {
	return fmt.Sprintf(`You are an insurance claims processing AI. Extract the following fields from the FNOL (First Notice of Loss) document below.

Return your response as valid JSON with this exact structure:

{
  "policyNumber": "string or null",
  "policyholderName": "string or null",
  "effectiveDates": {
    "start": "YYYY-MM-DD or null",
    "end": "YYYY-MM-DD or null"
  },
  "incidentDate": "YYYY-MM-DD or null",
  "incidentTime": "HH:MM or null",
  "incidentLocation": "string or null",
  "incidentDescription": "string or null",
  "claimantName": "string or null",
  "claimantContact": "string or null",
  "thirdParties": ["list of names or empty array"],
  "assetType": "string or null (e.g., Vehicle, Property, etc.)",
  "assetId": "string or null (e.g., VIN, address, etc.)",
  "estimatedDamage": number or null,
  "claimType": "string or null (e.g., Auto, Property, Injury, etc.)",
  "attachments": ["list of attachment names or empty array"],
  "initialEstimate": number or null
}

IMPORTANT INSTRUCTIONS:
1. Extract only factual information present in the document
2. Use null for missing fields
3. Convert dates to YYYY-MM-DD format
4. Convert currency amounts to numbers (remove $ and commas)
5. Return ONLY valid JSON, no additional text or explanation
6. If incident description mentions injury or bodily harm, ensure claimType reflects this

FNOL DOCUMENT:
%s

JSON OUTPUT:`, documentText)
}

// ParseFieldsResponse decodes a backend reply into a FieldMap. Models often
// wrap JSON in markdown code fences; those are stripped first. Any key not in
// the schema is dropped by the decode, and a reply that carries no JSON
// object is an error (the caller falls back to pattern extraction).
func ParseFieldsResponse(raw string) (*model.FieldMap, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) >= 2 {
			lines = lines[1 : len(lines)-1]
		}
		text = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	// Some models prepend prose despite instructions. Recover by slicing
	// from the first { to the last }.
	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end == -1 || end < start {
			return nil, fmt.Errorf("response contains no JSON object")
		}
		text = text[start : end+1]
	}

	fields := model.NewFieldMap()
	if err := json.Unmarshal([]byte(text), fields); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	// json.Unmarshal overwrites the seeded slices when the response carries
	// null; restore the empty-slice convention.
	if fields.ThirdParties == nil {
		fields.ThirdParties = []string{}
	}
	if fields.Attachments == nil {
		fields.Attachments = []string{}
	}

	return fields, nil
}
