package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/misterclayt0n/tribase/internal/ingest"
	"github.com/misterclayt0n/tribase/internal/models"
)

var ErrPlanNotFound = errors.New("plan not found")

func initializePlans(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS plans (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT,
            created_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS planned_workouts (
            id TEXT PRIMARY KEY,
            plan_id TEXT NOT NULL REFERENCES plans(id),
            date TEXT NOT NULL,
            discipline TEXT NOT NULL,
            title TEXT,
            notes TEXT,
            easy_minutes REAL NOT NULL DEFAULT 0,
            hard_minutes REAL NOT NULL DEFAULT 0,
            order_index INTEGER NOT NULL
        );

        CREATE INDEX IF NOT EXISTS idx_planned_workouts_plan ON planned_workouts(plan_id);
    `)
	return err
}

// SavePlan creates the plan, or replaces the workouts of an existing plan
// with the same name. It reports whether a new plan was created.
func (s *SQLStore) SavePlan(ctx context.Context, plan models.Plan) (bool, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Failed to begin transaction: %w", err)
	}
	// Roll back on error.
	defer tx.Rollback()

	var planID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM plans WHERE name = ?`, plan.Name).Scan(&planID)
	created := errors.Is(err, sql.ErrNoRows)
	switch {
	case created:
		planID = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO plans (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			planID, plan.Name, plan.Description, time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return false, fmt.Errorf("Failed to create plan: %w", err)
		}
	case err != nil:
		return false, fmt.Errorf("Failed to query plan: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE plans SET description = ? WHERE id = ?`, plan.Description, planID); err != nil {
			return false, fmt.Errorf("Failed to update plan: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM planned_workouts WHERE plan_id = ?`, planID); err != nil {
			return false, fmt.Errorf("Failed to clear planned workouts: %w", err)
		}
	}

	if err := insertPlannedWorkouts(ctx, tx, planID, plan.Workouts); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return created, nil
}

func insertPlannedWorkouts(ctx context.Context, tx *sql.Tx, planID string, workouts []models.PlannedWorkout) error {
	for index, w := range workouts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO planned_workouts
             (id, plan_id, date, discipline, title, notes, easy_minutes, hard_minutes, order_index)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(),
			planID,
			w.DateString(),
			string(w.Discipline),
			w.Title,
			w.Notes,
			w.EasyMinutes,
			w.HardMinutes,
			index,
		)
		if err != nil {
			return fmt.Errorf("Failed to create planned workout: %w", err)
		}
	}
	return nil
}

// ListPlans returns every plan without its workouts, oldest first.
func (s *SQLStore) ListPlans(ctx context.Context) ([]models.Plan, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, name, COALESCE(description, ''), created_at
        FROM plans
        ORDER BY created_at, name
    `)
	if err != nil {
		return nil, fmt.Errorf("Failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var (
			p         models.Plan
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("Failed to scan plan: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *SQLStore) GetPlanByName(ctx context.Context, name string) (*models.Plan, error) {
	var (
		p         models.Plan
		createdAt string
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(description, ''), created_at FROM plans WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &p.Description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query plan: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, date, discipline, COALESCE(title, ''), COALESCE(notes, ''), easy_minutes, hard_minutes
        FROM planned_workouts
        WHERE plan_id = ?
        ORDER BY date, order_index
    `, p.ID)
	if err != nil {
		return nil, fmt.Errorf("Failed to query planned workouts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			w                models.PlannedWorkout
			date, discipline string
		)
		if err := rows.Scan(&w.ID, &date, &discipline, &w.Title, &w.Notes, &w.EasyMinutes, &w.HardMinutes); err != nil {
			return nil, fmt.Errorf("Failed to scan planned workout: %w", err)
		}
		if w.Date, err = ingest.ParseDate(date); err != nil {
			return nil, fmt.Errorf("Planned workout %s: %w", w.ID, err)
		}
		if w.Discipline, err = ingest.ParseDiscipline(discipline); err != nil {
			return nil, fmt.Errorf("Planned workout %s: %w", w.ID, err)
		}
		p.Workouts = append(p.Workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failed to read planned workouts: %w", err)
	}
	return &p, nil
}

func (s *SQLStore) DeletePlanByName(ctx context.Context, name string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var planID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM plans WHERE name = ?`, name).Scan(&planID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("Failed to query plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM planned_workouts WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("Failed to delete planned workouts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, planID); err != nil {
		return fmt.Errorf("Failed to delete plan: %w", err)
	}
	return tx.Commit()
}
