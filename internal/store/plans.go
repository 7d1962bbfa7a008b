package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/speakplan/internal/planner"
)

// ErrNoPlan is returned when no plan has been generated yet.
var ErrNoPlan = errors.New("no study plan")

// PlanRecord is a stored plan together with the availability it was built from.
type PlanRecord struct {
	ID           string               `json:"id"`
	CreatedAt    time.Time            `json:"createdAt"`
	Availability planner.Availability `json:"availability"`
	Plan         *planner.StudyPlan   `json:"plan"`
}

// PlanRepo holds the learner's current plan. Saving a plan replaces the
// previous one.
type PlanRepo interface {
	// Save stores plan as the current plan and returns the new record.
	Save(ctx context.Context, a planner.Availability, plan *planner.StudyPlan) (*PlanRecord, error)

	// Current returns the current plan, or ErrNoPlan.
	Current(ctx context.Context) (*PlanRecord, error)

	// UpdateStatus changes one session's status.
	UpdateStatus(ctx context.Context, sessionID string, status planner.Status) error

	// Reset discards the current plan.
	Reset(ctx context.Context) error
}

// planRepo implements PlanRepo with raw SQL.
type planRepo struct {
	db *sql.DB
}

const timeLayout = time.RFC3339Nano

func (r *planRepo) Save(ctx context.Context, a planner.Availability, plan *planner.StudyPlan) (*PlanRecord, error) {
	avail, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal availability: %w", err)
	}

	rec := &PlanRecord{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Availability: a,
		Plan:         plan,
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return nil, fmt.Errorf("clear sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plans`); err != nil {
		return nil, fmt.Errorf("clear plans: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (id, created_at, start_date, end_date, availability, location) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.Format(timeLayout),
		plan.StartDate.Format(timeLayout),
		plan.EndDate.Format(timeLayout),
		string(avail),
		plan.StartDate.Location().String(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sessions (id, plan_id, seq, date, duration, type, topic, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare session insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range plan.Sessions {
		_, err := stmt.ExecContext(ctx,
			s.ID, rec.ID, i, s.Date.Format(timeLayout), s.Duration, string(s.Type), s.Topic, string(s.Status))
		if err != nil {
			return nil, fmt.Errorf("insert session %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

func (r *planRepo) Current(ctx context.Context) (*PlanRecord, error) {
	var (
		rec                                 PlanRecord
		created, start, end, avail, locName string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, start_date, end_date, availability, location FROM plans LIMIT 1`,
	).Scan(&rec.ID, &created, &start, &end, &avail, &locName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("query plan: %w", err)
	}

	if err := json.Unmarshal([]byte(avail), &rec.Availability); err != nil {
		return nil, fmt.Errorf("unmarshal availability: %w", err)
	}

	plan := &planner.StudyPlan{Sessions: []planner.StudySession{}}
	if rec.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if plan.StartDate, err = time.Parse(timeLayout, start); err != nil {
		return nil, fmt.Errorf("parse start_date: %w", err)
	}
	if plan.EndDate, err = time.Parse(timeLayout, end); err != nil {
		return nil, fmt.Errorf("parse end_date: %w", err)
	}
	loc := planLocation(locName, plan.StartDate)
	plan.StartDate = plan.StartDate.In(loc)
	plan.EndDate = plan.EndDate.In(loc)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, duration, type, topic, status FROM sessions WHERE plan_id = ? ORDER BY seq`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s                 planner.StudySession
			date, typ, status string
		)
		if err := rows.Scan(&s.ID, &date, &s.Duration, &typ, &s.Topic, &status); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.Date, err = time.Parse(timeLayout, date); err != nil {
			return nil, fmt.Errorf("parse session date: %w", err)
		}
		s.Date = s.Date.In(loc)
		s.Type = planner.SessionType(typ)
		s.Status = planner.Status(status)
		plan.Sessions = append(plan.Sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	rec.Plan = plan
	return &rec, nil
}

// planLocation reattaches the zone a plan was generated in. RFC 3339 keeps
// only the offset, which drifts from the zone across a DST change and
// would move sessions near midnight onto the wrong calendar day. Unknown
// names fall back to the stored offset.
func planLocation(name string, start time.Time) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return start.Location()
}

func (r *planRepo) UpdateStatus(ctx context.Context, sessionID string, status planner.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", planner.ErrInvalidStatus, status)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET status = ? WHERE id = ?`, string(status), sessionID)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", planner.ErrSessionNotFound, sessionID)
	}
	return nil
}

func (r *planRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plans`); err != nil {
		return fmt.Errorf("clear plans: %w", err)
	}
	return nil
}
