package blotter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const caseColumns = `
	id, case_number, complainant_id, accused, incident_date, date_reported,
	location, complaint_type, complaint_details, status, current_meeting,
	meetings, contact_history, cfa_issued, cfa_issue_date, cfa_reason,
	document_history, resolution_details, resolved_date, created_at, updated_at
`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(c *Case) error {
	query := `
		INSERT INTO blotter_cases
		(case_number, complainant_id, accused, incident_date, date_reported,
		 location, complaint_type, complaint_details, status, current_meeting,
		 meetings, contact_history, cfa_issued, document_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11, false, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		query,
		c.CaseNumber,
		c.ComplainantID,
		c.Accused,
		c.IncidentDate,
		c.DateReported,
		c.Location,
		c.ComplaintType,
		c.ComplaintDetails,
		c.Status,
		c.Meetings,
		c.ContactHistory,
		c.DocumentHistory,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repository) GetByID(id int64) (*Case, error) {
	var c Case
	query := fmt.Sprintf(`SELECT %s FROM blotter_cases WHERE id = $1`, caseColumns)
	if err := r.db.Get(&c, query, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetAll(filter Filter) ([]Case, int, error) {
	cases := []Case{}
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.ComplainantID != 0 {
		conditions = append(conditions, fmt.Sprintf("complainant_id = $%d", argIdx))
		args = append(args, filter.ComplainantID)
		argIdx++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(case_number ILIKE $%d OR complaint_type ILIKE $%d OR complaint_details ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM blotter_cases %s", where)
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM blotter_cases
		%s
		ORDER BY date_reported DESC
		LIMIT $%d OFFSET $%d
	`, caseColumns, where, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	if err := r.db.Select(&cases, query, args...); err != nil {
		return nil, 0, err
	}

	return cases, total, nil
}

func (r *Repository) Summary() (*Summary, error) {
	var summary Summary
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'Under Investigation') AS under_investigation,
			COUNT(*) FILTER (WHERE status = 'Resolved') AS resolved,
			COUNT(*) FILTER (WHERE status = 'Dismissed') AS dismissed,
			COUNT(*) FILTER (WHERE status = 'Escalated to PNP') AS escalated,
			COUNT(*) FILTER (WHERE cfa_issued = true) AS cfa_issued
		FROM blotter_cases
	`
	if err := r.db.Get(&summary, query); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetStatus moves the case only when it still holds one of the expected
// statuses. Resolution fields are written as given; callers pass nil to
// leave them untouched.
func (r *Repository) SetStatus(id int64, from []Status, to Status, resolutionDetails *string, resolvedDate *time.Time) (bool, error) {
	fromList := make([]string, len(from))
	for i, s := range from {
		fromList[i] = string(s)
	}

	query := `
		UPDATE blotter_cases
		SET status = $2,
		    resolution_details = COALESCE($3, resolution_details),
		    resolved_date = COALESCE($4, resolved_date),
		    updated_at = NOW()
		WHERE id = $1 AND status = ANY($5)
	`
	result, err := r.db.Exec(query, id, to, resolutionDetails, resolvedDate, pq.Array(fromList))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// RecordMeeting appends the new meeting list and bumps the counter in one
// conditional write. The guard re-checks the counter so two concurrent
// recordings of the same meeting number apply once.
func (r *Repository) RecordMeeting(id int64, meetings Meetings, expectedCurrent int) (bool, error) {
	query := `
		UPDATE blotter_cases
		SET meetings = $2,
		    current_meeting = current_meeting + 1,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'Under Investigation' AND current_meeting = $3
	`
	result, err := r.db.Exec(query, id, meetings, expectedCurrent)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// UpdateMeetings rewrites the meeting list without touching the counter,
// used when an existing meeting's status or minutes change.
func (r *Repository) UpdateMeetings(id int64, meetings Meetings) error {
	query := `
		UPDATE blotter_cases
		SET meetings = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, meetings)
	return err
}

// IssueCFA flips the flag without changing status. The guard repeats the
// eligibility check so a double submission issues exactly one CFA.
func (r *Repository) IssueCFA(id int64, now time.Time, reason string, history DocumentHistory) (bool, error) {
	query := `
		UPDATE blotter_cases
		SET cfa_issued = true,
		    cfa_issue_date = $2,
		    cfa_reason = $3,
		    document_history = $4,
		    updated_at = $2
		WHERE id = $1
		  AND status = 'Under Investigation'
		  AND current_meeting >= 3
		  AND cfa_issued = false
	`
	result, err := r.db.Exec(query, id, now, reason, history)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *Repository) AppendContact(id int64, history ContactHistory) error {
	query := `
		UPDATE blotter_cases
		SET contact_history = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, history)
	return err
}

// CountOverdue counts unresolved cases reported more than a week before
// the given instant.
func (r *Repository) CountOverdue(now time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM blotter_cases
		WHERE status IN ('Pending', 'Under Investigation')
		  AND date_reported < $1 - INTERVAL '7 days'
	`
	if err := r.db.Get(&count, query, now); err != nil {
		return 0, err
	}
	return count, nil
}
