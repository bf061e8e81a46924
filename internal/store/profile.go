package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/aryamehta0302/handfield/internal/gesture"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile represents a named set of classifier thresholds stored in the
// database. Calibration writes new profiles; the engine loads the active
// one at startup.
type Profile struct {
	ID        string
	Name      string
	Tuning    gesture.Tuning
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for tuning profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

const profileColumns = `id, name, closed_reference, open_reference,
	finger_extended_min, pinch_distance_max, palm_deadband,
	peace_tension_max, point_tension_min, pinch_tension_min,
	palm_tension_max, stable_run_length, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID, &p.Name,
		&p.Tuning.ClosedReference, &p.Tuning.OpenReference,
		&p.Tuning.FingerExtendedMin, &p.Tuning.PinchDistanceMax,
		&p.Tuning.PalmDeadband,
		&p.Tuning.PeaceTensionMax, &p.Tuning.PointTensionMin,
		&p.Tuning.PinchTensionMin, &p.Tuning.PalmTensionMax,
		&p.Tuning.StableRunLength,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO tuning_profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name,
		p.Tuning.ClosedReference, p.Tuning.OpenReference,
		p.Tuning.FingerExtendedMin, p.Tuning.PinchDistanceMax,
		p.Tuning.PalmDeadband,
		p.Tuning.PeaceTensionMax, p.Tuning.PointTensionMin,
		p.Tuning.PinchTensionMin, p.Tuning.PalmTensionMax,
		p.Tuning.StableRunLength,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	row := r.db.QueryRow(
		`SELECT `+profileColumns+` FROM tuning_profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	row := r.db.QueryRow(
		`SELECT `+profileColumns+` FROM tuning_profiles WHERE name = ?`, name)
	return scanProfile(row)
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT ` + profileColumns + ` FROM tuning_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing profile in the database.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE tuning_profiles SET name = ?, closed_reference = ?,
			open_reference = ?, finger_extended_min = ?,
			pinch_distance_max = ?, palm_deadband = ?,
			peace_tension_max = ?, point_tension_min = ?,
			pinch_tension_min = ?, palm_tension_max = ?,
			stable_run_length = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name,
		p.Tuning.ClosedReference, p.Tuning.OpenReference,
		p.Tuning.FingerExtendedMin, p.Tuning.PinchDistanceMax,
		p.Tuning.PalmDeadband,
		p.Tuning.PeaceTensionMax, p.Tuning.PointTensionMin,
		p.Tuning.PinchTensionMin, p.Tuning.PalmTensionMax,
		p.Tuning.StableRunLength,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a profile from the database by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM tuning_profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
