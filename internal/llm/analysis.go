package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hkjudgments/courtextract/internal/extract"
)

// Analysis holds the standardized labels returned by the analyst model for
// one judgment record.
type Analysis struct {
	CaseType              string `json:"case_type"`
	JudgmentResult        string `json:"judgment_result"`
	ClaimAmount           string `json:"claim_amount"`
	JudgmentAmount        string `json:"judgment_amount"`
	PlaintiffLawyer       string `json:"plaintiff_lawyer"`
	DefendantLawyer       string `json:"defendant_lawyer"`
	JudgmentRelationships string `json:"judgment_relationships"`
}

// DefaultCaseType is assigned when the model picks nothing from CaseTypes.
const DefaultCaseType = "Civil Action"

// ResultUnknown marks a judgment outcome the model could not standardize.
const ResultUnknown = "unknown"

// CaseTypes lists the standardized case-type labels, most specific first.
var CaseTypes = []string{
	"Contract Dispute",
	"Trust Dispute",
	"Appeal",
	"Setting Aside Application",
	"Security for Costs Application",
	"Mareva Injunction Discharge Application",
	"Commercial Dispute",
	"Debt Recovery",
	"Amendment Application",
	"Miscellaneous Proceedings",
	DefaultCaseType,
}

// JudgmentResults lists the standardized outcome labels.
var JudgmentResults = []string{
	"Win",
	"Lose",
	"Appeal Dismissed",
	"Judgment Affirmed",
	"Plaintiff Withdrawn",
}

// analysisSchema accepts the JSON object the analyst is instructed to
// return. Label vocabulary is enforced by normalize, not the schema, so a
// model that invents a label degrades to the defaults instead of failing
// the whole response.
var analysisSchema = jsonschema.MustCompileString("analysis.json", `{
	"type": "object",
	"required": ["case_type", "judgment_result"],
	"properties": {
		"case_type": {"type": "string"},
		"judgment_result": {"type": "string"},
		"claim_amount": {"type": "string"},
		"judgment_amount": {"type": "string"},
		"plaintiff_lawyer": {"type": "string"},
		"defendant_lawyer": {"type": "string"},
		"judgment_relationships": {"type": "string"}
	}
}`)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// sanitizeJSON recovers the JSON object from a chatty model response:
// fenced code blocks are unwrapped, otherwise the outermost braces win,
// and trailing commas are dropped.
func sanitizeJSON(content string) string {
	content = strings.TrimSpace(content)

	switch {
	case strings.Contains(content, "```json"):
		start := strings.Index(content, "```json") + len("```json")
		content = cutAtFence(content[start:])
	case strings.Contains(content, "```"):
		start := strings.Index(content, "```") + len("```")
		content = cutAtFence(content[start:])
	case strings.Contains(content, "{") && strings.Contains(content, "}"):
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		content = content[start : end+1]
	case strings.Contains(content, "[") && strings.Contains(content, "]"):
		start := strings.Index(content, "[")
		end := strings.LastIndex(content, "]")
		content = content[start : end+1]
	}

	return trailingCommaRe.ReplaceAllString(strings.TrimSpace(content), "$1")
}

func cutAtFence(s string) string {
	if end := strings.Index(s, "```"); end >= 0 {
		return strings.TrimSpace(s[:end])
	}
	return strings.TrimSpace(s)
}

// parseAnalysis decodes and validates one model response.
func parseAnalysis(content string) (Analysis, error) {
	cleaned := sanitizeJSON(content)

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return Analysis{}, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := analysisSchema.Validate(raw); err != nil {
		return Analysis{}, fmt.Errorf("response failed schema validation: %w", err)
	}

	var a Analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return Analysis{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return normalize(a), nil
}

// normalize snaps free-text labels onto the fixed vocabularies and fills
// the unknown sentinel for blank amount and relationship fields.
func normalize(a Analysis) Analysis {
	if !containsLabel(CaseTypes, a.CaseType) {
		a.CaseType = DefaultCaseType
	}
	if !containsLabel(JudgmentResults, a.JudgmentResult) {
		a.JudgmentResult = ResultUnknown
	}
	if strings.TrimSpace(a.ClaimAmount) == "" {
		a.ClaimAmount = ResultUnknown
	}
	if strings.TrimSpace(a.JudgmentAmount) == "" {
		a.JudgmentAmount = ResultUnknown
	}
	if strings.TrimSpace(a.JudgmentRelationships) == "" {
		a.JudgmentRelationships = ResultUnknown
	}
	return a
}

func containsLabel(labels []string, v string) bool {
	for _, l := range labels {
		if l == v {
			return true
		}
	}
	return false
}

// Enrich merges an analysis into a stage-1 record. Label fields always take
// the standardized value; value fields keep the stage-1 extraction when the
// model returned nothing better, so a degraded analysis never erases data
// the engine already found.
func Enrich(rec extract.Record, a Analysis) extract.Record {
	rec.CaseType = a.CaseType
	rec.JudgmentResult = a.JudgmentResult
	if usable(a.ClaimAmount) {
		rec.ClaimAmount = a.ClaimAmount
	}
	if usable(a.JudgmentAmount) {
		rec.JudgmentAmount = a.JudgmentAmount
	}
	if usable(a.PlaintiffLawyer) {
		rec.PlaintiffLawyer = a.PlaintiffLawyer
	}
	if usable(a.DefendantLawyer) {
		rec.DefendantLawyer = a.DefendantLawyer
	}
	if usable(a.JudgmentRelationships) {
		rec.JudgmentRelationships = a.JudgmentRelationships
	}
	return rec
}

func usable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != ResultUnknown
}
