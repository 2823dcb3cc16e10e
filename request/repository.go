package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const requestColumns = `
	id, resident_id, document_types, purpose, status, rejection_reason,
	processing_stage, pickup_period, scheduled_claim_date, scheduled_claim_time,
	priority_score, estimated_completion_date, auto_archive_date,
	is_expired, expiration_date, automation_notes, created_at, updated_at
`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(req *DocumentRequest) error {
	query := `
		INSERT INTO document_requests
		(resident_id, document_types, purpose, status, processing_stage,
		 priority_score, estimated_completion_date, auto_archive_date,
		 is_expired, automation_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, '{}', NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		query,
		req.ResidentID,
		req.DocumentTypes,
		req.Purpose,
		req.Status,
		req.ProcessingStage,
		req.PriorityScore,
		req.EstimatedCompletionDate,
		req.AutoArchiveDate,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *Repository) GetByID(id int64) (*DocumentRequest, error) {
	var req DocumentRequest
	query := fmt.Sprintf(`SELECT %s FROM document_requests WHERE id = $1`, requestColumns)
	if err := r.db.Get(&req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *Repository) GetAll(filter Filter) ([]DocumentRequest, int, error) {
	requests := []DocumentRequest{}
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.ResidentID != 0 {
		conditions = append(conditions, fmt.Sprintf("resident_id = $%d", argIdx))
		args = append(args, filter.ResidentID)
		argIdx++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("purpose ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM document_requests %s", where)
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	allowedSort := map[string]bool{"created_at": true, "updated_at": true, "priority_score": true, "status": true}
	sortBy := "created_at"
	if filter.SortBy != "" && allowedSort[filter.SortBy] {
		sortBy = filter.SortBy
	}

	dir := "DESC"
	if strings.ToUpper(filter.SortDirection) == "ASC" {
		dir = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM document_requests
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, requestColumns, where, sortBy, dir, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	if err := r.db.Select(&requests, query, args...); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *Repository) Summary() (*Summary, error) {
	var summary Summary
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'Approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'Processing') AS processing,
			COUNT(*) FILTER (WHERE status = 'Ready to Claim') AS ready_to_claim,
			COUNT(*) FILTER (WHERE status = 'Scheduled for Pickup') AS scheduled_for_pickup,
			COUNT(*) FILTER (WHERE status = 'Claimed') AS claimed,
			COUNT(*) FILTER (WHERE status = 'Expired') AS expired,
			COUNT(*) FILTER (WHERE status = 'Archived') AS archived,
			COUNT(*) FILTER (WHERE status = 'Rejected') AS rejected
		FROM document_requests
	`
	if err := r.db.Get(&summary, query); err != nil {
		return nil, err
	}
	return &summary, nil
}

// UpdateStatus flips status only when the row still holds one of the
// expected statuses, so a racing sweep or second click cannot double-apply.
// The rejection reason survives only on Rejected; an automation note is
// appended only when earlier automated updates are already on record.
func (r *Repository) UpdateStatus(id int64, from []Status, to Status, stage *ProcessingStage, rejectionReason *string, note string) (bool, error) {
	fromList := make([]string, len(from))
	for i, s := range from {
		fromList[i] = string(s)
	}

	query := `
		UPDATE document_requests
		SET status = $2,
		    updated_at = NOW(),
		    rejection_reason = CASE WHEN $2 = 'Rejected' THEN $3 ELSE NULL END,
		    processing_stage = COALESCE($4, processing_stage),
		    automation_notes = CASE
		        WHEN cardinality(automation_notes) > 0 THEN array_append(automation_notes, $5)
		        ELSE automation_notes
		    END
		WHERE id = $1 AND status = ANY($6)
	`

	var stageVal interface{}
	if stage != nil {
		stageVal = string(*stage)
	}

	result, err := r.db.Exec(query, id, to, rejectionReason, stageVal, note, pq.Array(fromList))
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *Repository) SetPickupPeriod(id int64, period *PickupPeriod) error {
	query := `
		UPDATE document_requests
		SET pickup_period = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, period)
	return err
}

// ScheduleClaim books a slot and moves the request to Scheduled for Pickup
// in one conditional write; the updated period carries the consumed slot.
func (r *Repository) ScheduleClaim(id int64, period *PickupPeriod, date time.Time, slotTime string) (bool, error) {
	query := `
		UPDATE document_requests
		SET pickup_period = $2,
		    scheduled_claim_date = $3,
		    scheduled_claim_time = $4,
		    status = 'Scheduled for Pickup',
		    rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'Ready to Claim'
	`
	result, err := r.db.Exec(query, id, period, date, slotTime)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *Repository) ListExpiryCandidates() ([]DocumentRequest, error) {
	requests := []DocumentRequest{}
	query := fmt.Sprintf(`
		SELECT %s FROM document_requests
		WHERE status IN ('Scheduled for Pickup', 'Ready to Claim') AND is_expired = false
	`, requestColumns)
	if err := r.db.Select(&requests, query); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *Repository) ListArchiveCandidates() ([]DocumentRequest, error) {
	requests := []DocumentRequest{}
	query := fmt.Sprintf(`
		SELECT %s FROM document_requests
		WHERE status = 'Expired' AND is_expired = true
	`, requestColumns)
	if err := r.db.Select(&requests, query); err != nil {
		return nil, err
	}
	return requests, nil
}

// MarkExpired is a compare-and-set: the guard re-checks status and the
// is_expired flag so concurrent sweeps count each expiry once.
func (r *Repository) MarkExpired(id int64, now time.Time, note string) (bool, error) {
	query := `
		UPDATE document_requests
		SET status = 'Expired',
		    is_expired = true,
		    expiration_date = $2,
		    automation_notes = array_append(automation_notes, $3),
		    updated_at = $2
		WHERE id = $1
		  AND status IN ('Scheduled for Pickup', 'Ready to Claim')
		  AND is_expired = false
	`
	result, err := r.db.Exec(query, id, now, note)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *Repository) MarkArchived(id int64, now time.Time, note string) (bool, error) {
	query := `
		UPDATE document_requests
		SET status = 'Archived',
		    automation_notes = array_append(automation_notes, $3),
		    updated_at = $2
		WHERE id = $1 AND status = 'Expired' AND is_expired = true
	`
	result, err := r.db.Exec(query, id, now, note)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
