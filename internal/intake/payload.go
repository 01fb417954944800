// Package intake normalizes heterogeneous form-vendor webhook payloads into
// assessment records.
package intake

import (
	"regexp"
	"strconv"
	"strings"
)

// Payload is the webhook body sent by the form vendor on submission.
type Payload struct {
	FormID     string     `json:"formId"`
	FormName   string     `json:"formName"`
	Submission Submission `json:"submission"`
}

type Submission struct {
	SubmissionID   string     `json:"submissionId"`
	SubmissionTime string     `json:"submissionTime"`
	Questions      []Question `json:"questions"`
}

// Question is one answered form field. Value may be a string, number,
// array, or null depending on the question type.
type Question struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Answer labels as configured in the form builder. Renaming a question in
// the form breaks the mapping, so these stay verbatim.
const (
	fieldEmail     = "Email"
	fieldEmailAlt  = "email"
	fieldWorkEmail = "Work email"

	fieldCompanyName = "Company Name"
	fieldWebsite     = "Website"
	fieldIndustry    = "Select your primary Industry"
	fieldIndustryAlt = "Industry"
	fieldCountry     = "Country"
	fieldCompanySize = "Company size"
	fieldRole        = "Role"

	fieldThreats    = "Pick up up to 3 strategic threats"
	fieldChallenges = "What are your biggest problems as a business?"

	fieldPrimaryGoal = "Primary Goal with AI?"
	fieldTopKPI      = "Top KPI you want to move"
	fieldUrgency     = "Urgency for results"
	fieldGoals       = "What do you want to achieve with AI?"

	fieldAIUsage      = "What best describes your current AI/ML usage?"
	fieldCapabilities = "Which of these AI capabilities does your company currently use?"
	fieldDataQuality  = "How would you rate your data quality and accessibility?"
	fieldAITalent     = "Does your company have dedicated AI/Data Science talent?"
	fieldAIBudget     = "What's your annual budget for AI/ML initiatives?"
	fieldAIStrategy   = "Do you have a formal AI strategy or roadmap?"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldMap flattens questions into a lookup keyed by question name, falling
// back to the question ID. Later duplicates win.
func FieldMap(questions []Question) map[string]any {
	fields := make(map[string]any, len(questions))
	for _, q := range questions {
		key := q.Name
		if key == "" {
			key = q.ID
		}
		fields[key] = q.Value
	}
	return fields
}

// ResolveEmail finds the submitter's email. Known field names win over a
// question-type match, which wins over a regex scan of all values. The
// type and regex fallbacks walk the questions slice so resolution is
// deterministic across identical payloads.
func ResolveEmail(questions []Question, fields map[string]any) string {
	for _, key := range []string{fieldEmail, fieldEmailAlt, fieldWorkEmail} {
		if v := stringify(fields[key]); v != "" {
			return v
		}
	}
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Type), "email") {
			if v := stringify(q.Value); v != "" {
				return v
			}
		}
	}
	for _, q := range questions {
		if s, ok := q.Value.(string); ok && emailRe.MatchString(s) {
			return s
		}
	}
	return ""
}

// NormalizeValue flattens a raw answer to a display string. Single-item
// arrays collapse to the item, multi-select answers join with commas, and
// null or empty answers become "".
func NormalizeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		if len(v) == 0 {
			return ""
		}
		if len(v) == 1 {
			return stringify(v[0])
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return stringify(value)
	}
}

// StringList converts an array answer to a string slice. Non-array answers
// yield an empty slice, matching how multi-select fields are stored.
func StringList(value any) []string {
	arr, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if item == nil {
			continue
		}
		out = append(out, stringify(item))
	}
	return out
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
