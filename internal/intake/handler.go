package intake

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"assessment-backend/internal/assessments"
	"assessment-backend/internal/industries"
	"assessment-backend/internal/shared/metrics"
	"assessment-backend/internal/shared/server/respond"
	"assessment-backend/internal/shared/telemetry"
	"assessment-backend/internal/users"
)

// Handler receives form-vendor webhook submissions.
type Handler struct {
	Assessments *assessments.Service
	Users       *users.Service
	Secret      string
	BaseURL     string
}

// Receive handles POST /assessment-intake?secret=. Submissions without a
// resolvable email are acknowledged with 200 and dropped: the vendor sends
// test pings in exactly that shape, and a non-2xx would make it retry.
func (h *Handler) Receive(c *gin.Context) {
	if c.Query("secret") != h.Secret {
		metrics.IncWebhookRejected()
		telemetry.Warn("intake.rejected", map[string]any{
			"request_id": c.GetString("requestId"),
			"reason":     "invalid secret",
		})
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
		return
	}

	var payload Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		metrics.IncWebhookRejected()
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid webhook payload", nil)
		return
	}

	questions := payload.Submission.Questions
	fields := FieldMap(questions)

	email := ResolveEmail(questions, fields)
	if email == "" {
		telemetry.Info("intake.no_email", map[string]any{
			"request_id":      c.GetString("requestId"),
			"form_id":         payload.FormID,
			"questions_count": len(questions),
		})
		respond.OK(c, gin.H{
			"success": true,
			"message": "Webhook endpoint is working. Email is required for actual submissions.",
			"debug": gin.H{
				"receivedFields": fieldKeys(fields),
				"questionsCount": len(questions),
			},
		})
		return
	}

	name := stringify(fields["name"])
	if name == "" {
		name = stringify(fields["Name"])
	}
	user, err := h.Users.FindOrCreate(c.Request.Context(), email, name)
	if err != nil {
		metrics.IncWebhookRejected()
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve user", nil)
		return
	}

	industryRaw := stringify(fields[fieldIndustry])
	if industryRaw == "" {
		industryRaw = stringify(fields[fieldIndustryAlt])
	}
	var industry industries.Industry
	if industryRaw != "" {
		industry = industries.Parse(industryRaw)
	}

	a := assessments.Assessment{
		UserID: user.ID,

		CompanyName:  stringify(fields[fieldCompanyName]),
		Website:      stringify(fields[fieldWebsite]),
		Industry:     industry.Label,
		IndustrySlug: industry.Slug,
		Country:      stringify(fields[fieldCountry]),
		CompanySize:  stringify(fields[fieldCompanySize]),
		Role:         stringify(fields[fieldRole]),

		StrategicThreats:  StringList(fields[fieldThreats]),
		CurrentChallenges: stringify(fields[fieldChallenges]),

		PrimaryGoal: NormalizeValue(fields[fieldPrimaryGoal]),
		TopKPI:      NormalizeValue(fields[fieldTopKPI]),
		Urgency:     NormalizeValue(fields[fieldUrgency]),
		Goals:       NormalizeValue(fields[fieldGoals]),

		CurrentAIUsage: NormalizeValue(fields[fieldAIUsage]),
		AICapabilities: StringList(fields[fieldCapabilities]),
		DataQuality:    NormalizeValue(fields[fieldDataQuality]),
		AITalent:       NormalizeValue(fields[fieldAITalent]),
		AIBudget:       NormalizeValue(fields[fieldAIBudget]),
		AIStrategy:     NormalizeValue(fields[fieldAIStrategy]),

		FormResponses: formResponses(payload, fields, industry),
	}

	ctx := assessments.WithRequestID(c.Request.Context(), c.GetString("requestId"))
	created, err := h.Assessments.Create(ctx, a)
	if err != nil {
		metrics.IncWebhookRejected()
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save assessment", nil)
		return
	}
	c.Set("assessmentId", created.ID)
	metrics.IncWebhookAccepted()

	telemetry.Info("intake.accepted", map[string]any{
		"request_id":    c.GetString("requestId"),
		"assessment_id": created.ID,
		"user_id":       user.ID,
		"form_id":       payload.FormID,
	})

	respond.OK(c, gin.H{
		"success":       true,
		"assessmentId":  created.ID,
		"userId":        user.ID,
		"processingUrl": h.BaseURL + "/processing?email=" + url.QueryEscape(email),
		"resultsUrl":    h.BaseURL + "/results/" + created.ID,
		"message":       "Assessment received and saved. AI processing started.",
	})
}

// Echo handles GET /assessment-intake so the endpoint can be verified from
// a browser or the vendor's webhook settings page.
func (h *Handler) Echo(c *gin.Context) {
	respond.OK(c, gin.H{
		"status":   "ok",
		"endpoint": "assessment-intake",
		"message":  "Webhook is ready to receive POST requests",
	})
}

// formResponses snapshots the submission in the structured shape the
// dashboard consumes, plus the raw flattened fields for debugging.
func formResponses(payload Payload, fields map[string]any, industry industries.Industry) map[string]any {
	submissionTime := payload.Submission.SubmissionTime
	if submissionTime == "" {
		submissionTime = time.Now().UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"profile": map[string]any{
			"companyName":  stringify(fields[fieldCompanyName]),
			"website":      stringify(fields[fieldWebsite]),
			"industry":     industry.Label,
			"industrySlug": industry.Slug,
			"country":      stringify(fields[fieldCountry]),
			"companySize":  stringify(fields[fieldCompanySize]),
			"role":         stringify(fields[fieldRole]),
		},
		"problems": map[string]any{
			"strategicThreats":  StringList(fields[fieldThreats]),
			"currentChallenges": stringify(fields[fieldChallenges]),
		},
		"goals": map[string]any{
			"primaryGoal":   NormalizeValue(fields[fieldPrimaryGoal]),
			"topKPI":        NormalizeValue(fields[fieldTopKPI]),
			"urgency":       NormalizeValue(fields[fieldUrgency]),
			"whatToAchieve": NormalizeValue(fields[fieldGoals]),
		},
		"aiMaturity": map[string]any{
			"currentAIUsage": NormalizeValue(fields[fieldAIUsage]),
			"aiCapabilities": StringList(fields[fieldCapabilities]),
			"dataQuality":    NormalizeValue(fields[fieldDataQuality]),
			"aiTalent":       NormalizeValue(fields[fieldAITalent]),
			"aiBudget":       NormalizeValue(fields[fieldAIBudget]),
			"aiStrategy":     NormalizeValue(fields[fieldAIStrategy]),
		},
		"metadata": map[string]any{
			"submissionId":   orUnknown(payload.Submission.SubmissionID),
			"formId":         orUnknown(payload.FormID),
			"formName":       orUnknown(payload.FormName),
			"submissionTime": submissionTime,
		},
		"rawData": fields,
	}
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func fieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return keys
}
