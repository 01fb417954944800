package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"assessment-backend/internal/generation"
)

type PGRepo struct {
	DB *sql.DB
}

const assessmentColumns = `
id, user_id,
company_name, website, industry, industry_slug, country, company_size, role,
strategic_threats, current_challenges,
primary_goal, top_kpi, urgency, goals,
current_ai_usage, ai_capabilities, data_quality, ai_talent, ai_budget, ai_strategy,
top_projects, roi_estimates, action_plan, crewai_report,
ai_maturity_score, ai_maturity_level,
form_responses, status, created_at`

func (r *PGRepo) Create(ctx context.Context, a Assessment) error {
	const query = `
INSERT INTO assessments (
  id, user_id,
  company_name, website, industry, industry_slug, country, company_size, role,
  strategic_threats, current_challenges,
  primary_goal, top_kpi, urgency, goals,
  current_ai_usage, ai_capabilities, data_quality, ai_talent, ai_budget, ai_strategy,
  form_responses, status, created_at
) VALUES (
  $1, $2,
  $3, $4, $5, $6, $7, $8, $9,
  $10, $11,
  $12, $13, $14, $15,
  $16, $17, $18, $19, $20, $21,
  $22, $23, now()
)`
	threats, err := marshalStringList(a.StrategicThreats)
	if err != nil {
		return fmt.Errorf("marshal strategic threats: %w", err)
	}
	capabilities, err := marshalStringList(a.AICapabilities)
	if err != nil {
		return fmt.Errorf("marshal ai capabilities: %w", err)
	}
	responses, err := marshalNullable(a.FormResponses)
	if err != nil {
		return fmt.Errorf("marshal form responses: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		nullableString(a.CompanyName),
		nullableString(a.Website),
		nullableString(a.Industry),
		nullableString(a.IndustrySlug),
		nullableString(a.Country),
		nullableString(a.CompanySize),
		nullableString(a.Role),
		threats,
		nullableString(a.CurrentChallenges),
		nullableString(a.PrimaryGoal),
		nullableString(a.TopKPI),
		nullableString(a.Urgency),
		nullableString(a.Goals),
		nullableString(a.CurrentAIUsage),
		capabilities,
		nullableString(a.DataQuality),
		nullableString(a.AITalent),
		nullableString(a.AIBudget),
		nullableString(a.AIStrategy),
		responses,
		a.Status,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	query := `SELECT ` + assessmentColumns + `
FROM assessments
WHERE id = $1
LIMIT 1`
	return scanAssessment(r.DB.QueryRowContext(ctx, query, assessmentID))
}

func (r *PGRepo) Complete(ctx context.Context, assessmentID string, update CompletionUpdate) error {
	const query = `
UPDATE assessments
SET top_projects = $2,
    roi_estimates = $3,
    action_plan = $4,
    crewai_report = $5,
    ai_maturity_score = $6,
    ai_maturity_level = $7,
    status = $8
WHERE id = $1 AND status = $9`
	projects, err := json.Marshal(update.TopProjects)
	if err != nil {
		return fmt.Errorf("marshal top projects: %w", err)
	}
	roi, err := json.Marshal(update.ROIEstimates)
	if err != nil {
		return fmt.Errorf("marshal roi estimates: %w", err)
	}
	plan, err := json.Marshal(update.ActionPlan)
	if err != nil {
		return fmt.Errorf("marshal action plan: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query,
		assessmentID,
		projects,
		roi,
		plan,
		nullableString(update.CrewReport),
		update.MaturityScore,
		update.MaturityLevel,
		StatusCompleted,
		StatusInProgress,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) MarkFailed(ctx context.Context, assessmentID string) error {
	const query = `
UPDATE assessments
SET status = $2
WHERE id = $1 AND status = $3`
	res, err := r.DB.ExecContext(ctx, query, assessmentID, StatusFailed, StatusInProgress)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	query := `SELECT ` + assessmentColumns + `
FROM assessments
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Assessment, error) {
	query := `SELECT ` + assessmentColumns + `
FROM assessments
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return scanAssessment(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) LatestByUserSince(ctx context.Context, userID string, since time.Time) (Assessment, error) {
	query := `SELECT ` + assessmentColumns + `
FROM assessments
WHERE user_id = $1 AND created_at >= $2
ORDER BY created_at DESC
LIMIT 1`
	return scanAssessment(r.DB.QueryRowContext(ctx, query, userID, since))
}

func (r *PGRepo) LatestSince(ctx context.Context, since time.Time) (Assessment, error) {
	query := `SELECT ` + assessmentColumns + `
FROM assessments
WHERE created_at >= $1
ORDER BY created_at DESC
LIMIT 1`
	return scanAssessment(r.DB.QueryRowContext(ctx, query, since))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (Assessment, error) {
	var a Assessment
	var (
		companyName, website, industry, industrySlug, country, companySize, role sql.NullString
		currentChallenges, primaryGoal, topKPI, urgency, goals                   sql.NullString
		currentAIUsage, dataQuality, aiTalent, aiBudget, aiStrategy              sql.NullString
		crewReport, maturityLevel                                                sql.NullString
		maturityScore                                                            sql.NullInt64
		threats, capabilities, projects, roi, plan, responses                    []byte
	)

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&companyName,
		&website,
		&industry,
		&industrySlug,
		&country,
		&companySize,
		&role,
		&threats,
		&currentChallenges,
		&primaryGoal,
		&topKPI,
		&urgency,
		&goals,
		&currentAIUsage,
		&capabilities,
		&dataQuality,
		&aiTalent,
		&aiBudget,
		&aiStrategy,
		&projects,
		&roi,
		&plan,
		&crewReport,
		&maturityScore,
		&maturityLevel,
		&responses,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}

	a.CompanyName = companyName.String
	a.Website = website.String
	a.Industry = industry.String
	a.IndustrySlug = industrySlug.String
	a.Country = country.String
	a.CompanySize = companySize.String
	a.Role = role.String
	a.CurrentChallenges = currentChallenges.String
	a.PrimaryGoal = primaryGoal.String
	a.TopKPI = topKPI.String
	a.Urgency = urgency.String
	a.Goals = goals.String
	a.CurrentAIUsage = currentAIUsage.String
	a.DataQuality = dataQuality.String
	a.AITalent = aiTalent.String
	a.AIBudget = aiBudget.String
	a.AIStrategy = aiStrategy.String
	a.CrewReport = crewReport.String
	a.MaturityLevel = maturityLevel.String
	if maturityScore.Valid {
		score := int(maturityScore.Int64)
		a.MaturityScore = &score
	}

	if err := unmarshalInto(threats, &a.StrategicThreats); err != nil {
		return Assessment{}, fmt.Errorf("unmarshal strategic threats: %w", err)
	}
	if err := unmarshalInto(capabilities, &a.AICapabilities); err != nil {
		return Assessment{}, fmt.Errorf("unmarshal ai capabilities: %w", err)
	}
	if a.StrategicThreats == nil {
		a.StrategicThreats = []string{}
	}
	if a.AICapabilities == nil {
		a.AICapabilities = []string{}
	}

	var topProjects []generation.ProjectRecommendation
	if err := unmarshalInto(projects, &topProjects); err != nil {
		return Assessment{}, fmt.Errorf("unmarshal top projects: %w", err)
	}
	a.TopProjects = topProjects

	if len(roi) > 0 {
		var estimates ROIEstimates
		if err := json.Unmarshal(roi, &estimates); err != nil {
			return Assessment{}, fmt.Errorf("unmarshal roi estimates: %w", err)
		}
		a.ROIEstimates = &estimates
	}
	if len(plan) > 0 {
		var actionPlan generation.ActionPlan
		if err := json.Unmarshal(plan, &actionPlan); err != nil {
			return Assessment{}, fmt.Errorf("unmarshal action plan: %w", err)
		}
		a.ActionPlan = &actionPlan
	}
	if err := unmarshalInto(responses, &a.FormResponses); err != nil {
		return Assessment{}, fmt.Errorf("unmarshal form responses: %w", err)
	}

	return a, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalStringList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func marshalNullable(v map[string]any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalInto(data []byte, target any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
