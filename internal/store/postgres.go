package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/suraksha-app/suraksha/internal/db"
	"github.com/suraksha-app/suraksha/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS profile (
	id               TEXT PRIMARY KEY,
	full_name        TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	phone            TEXT NOT NULL DEFAULT '',
	address          TEXT NOT NULL DEFAULT '',
	aadhaar_verified BOOLEAN NOT NULL DEFAULT false,
	aadhaar_number   TEXT NOT NULL DEFAULT '',
	blood_group      TEXT NOT NULL DEFAULT '',
	allergies        TEXT NOT NULL DEFAULT '',
	medications      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS contacts (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	phone    TEXT NOT NULL DEFAULT '',
	email    TEXT NOT NULL DEFAULT '',
	relation TEXT NOT NULL DEFAULT '',
	added_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS guardian_mode (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	active     BOOLEAN NOT NULL DEFAULT false,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS settings (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	dark_mode         BOOLEAN NOT NULL DEFAULT false,
	notifications     BOOLEAN NOT NULL DEFAULT true,
	sound             BOOLEAN NOT NULL DEFAULT true,
	location_tracking BOOLEAN NOT NULL DEFAULT true,
	privacy_mode      TEXT NOT NULL DEFAULT 'standard',
	check_in_interval INTEGER NOT NULL DEFAULT 15,
	safety_radius     INTEGER NOT NULL DEFAULT 50
);

CREATE TABLE IF NOT EXISTS alerts (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	read       BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS ratings (
	id          TEXT PRIMARY KEY,
	lat         DOUBLE PRECISION NOT NULL,
	lng         DOUBLE PRECISION NOT NULL,
	score       INTEGER NOT NULL CHECK (score BETWEEN 1 AND 10),
	comment     TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	author_name TEXT NOT NULL DEFAULT '',
	verified    BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS sos_events (
	id           TEXT PRIMARY KEY,
	lat          DOUBLE PRECISION NOT NULL,
	lng          DOUBLE PRECISION NOT NULL,
	approximate  BOOLEAN NOT NULL DEFAULT false,
	triggered_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS checkins (
	id         TEXT PRIMARY KEY,
	lat        DOUBLE PRECISION NOT NULL,
	lng        DOUBLE PRECISION NOT NULL,
	checked_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);

INSERT INTO profile (id) VALUES ('user-1') ON CONFLICT DO NOTHING;
INSERT INTO guardian_mode (id) VALUES (1) ON CONFLICT DO NOTHING;
INSERT INTO settings (id) VALUES (1) ON CONFLICT DO NOTHING;
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT id, full_name, email, phone, address, aadhaar_verified, aadhaar_number, blood_group, allergies, medications FROM profile LIMIT 1`,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Address, &p.AadhaarVerified,
		&p.AadhaarNumber, &p.BloodGroup, &p.Allergies, &p.Medications)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get profile")
	}
	return &p, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, p model.Profile) (*model.Profile, error) {
	cur, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	p.ID = cur.ID
	_, err = s.pool.Exec(ctx,
		`UPDATE profile SET full_name=$1, email=$2, phone=$3, address=$4, aadhaar_verified=$5, aadhaar_number=$6, blood_group=$7, allergies=$8, medications=$9 WHERE id=$10`,
		p.FullName, p.Email, p.Phone, p.Address, p.AadhaarVerified,
		p.AadhaarNumber, p.BloodGroup, p.Allergies, p.Medications, p.ID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: update profile")
	}
	return &p, nil
}

func (s *PostgresStore) ListContacts(ctx context.Context) ([]model.EmergencyContact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, phone, email, relation FROM contacts ORDER BY added_at`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contacts")
	}
	defer rows.Close()

	var out []model.EmergencyContact
	for rows.Next() {
		var c model.EmergencyContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Relation); err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate contacts")
}

func (s *PostgresStore) AddContact(ctx context.Context, c model.EmergencyContact) (*model.EmergencyContact, error) {
	if c.ID == "" {
		c.ID = "contact-" + uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, name, phone, email, relation) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Phone, c.Email, c.Relation,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert contact")
	}
	return &c, nil
}

func (s *PostgresStore) DeleteContact(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete contact")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetGuardianMode(ctx context.Context) (*model.GuardianState, error) {
	var g model.GuardianState
	err := s.pool.QueryRow(ctx,
		`SELECT active, updated_at FROM guardian_mode WHERE id = 1`,
	).Scan(&g.Active, &g.UpdatedAt)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get guardian mode")
	}
	return &g, nil
}

func (s *PostgresStore) SetGuardianMode(ctx context.Context, active bool, now time.Time) (*model.GuardianState, error) {
	_, err := s.pool.Exec(ctx,
		`UPDATE guardian_mode SET active = $1, updated_at = $2 WHERE id = 1`,
		active, now.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: set guardian mode")
	}
	return &model.GuardianState{Active: active, UpdatedAt: now.UTC()}, nil
}

func (s *PostgresStore) GetSettings(ctx context.Context) (*model.Settings, error) {
	var st model.Settings
	err := s.pool.QueryRow(ctx,
		`SELECT dark_mode, notifications, sound, location_tracking, privacy_mode, check_in_interval, safety_radius FROM settings WHERE id = 1`,
	).Scan(&st.DarkMode, &st.Notifications, &st.Sound, &st.LocationTracking,
		&st.PrivacyMode, &st.CheckInInterval, &st.SafetyRadius)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get settings")
	}
	return &st, nil
}

func (s *PostgresStore) UpdateSettings(ctx context.Context, st model.Settings) (*model.Settings, error) {
	_, err := s.pool.Exec(ctx,
		`UPDATE settings SET dark_mode=$1, notifications=$2, sound=$3, location_tracking=$4, privacy_mode=$5, check_in_interval=$6, safety_radius=$7 WHERE id = 1`,
		st.DarkMode, st.Notifications, st.Sound, st.LocationTracking,
		st.PrivacyMode, st.CheckInInterval, st.SafetyRadius,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: update settings")
	}
	return &st, nil
}

func (s *PostgresStore) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, type, title, message, location, created_at, read FROM alerts ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list alerts")
	}
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Location, &a.CreatedAt, &a.Read); err != nil {
			return nil, eris.Wrap(err, "postgres: scan alert")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate alerts")
}

func (s *PostgresStore) AddAlert(ctx context.Context, a model.Alert) (*model.Alert, error) {
	if a.ID == "" {
		a.ID = "alert-" + uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO alerts (id, type, title, message, location, created_at, read) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Type, a.Title, a.Message, a.Location, a.CreatedAt.UTC(), a.Read,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert alert")
	}
	return &a, nil
}

func (s *PostgresStore) MarkAlertRead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE alerts SET read = true WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: mark alert read")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) MarkAllAlertsRead(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `UPDATE alerts SET read = true`)
	return eris.Wrap(err, "postgres: mark all alerts read")
}

func (s *PostgresStore) DeleteAlert(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete alert")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRatings(ctx context.Context) ([]model.AreaRating, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, lat, lng, score, comment, created_at, author_name, verified FROM ratings ORDER BY created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list ratings")
	}
	defer rows.Close()

	var out []model.AreaRating
	for rows.Next() {
		var r model.AreaRating
		if err := rows.Scan(&r.ID, &r.Location.Lat, &r.Location.Lng, &r.Score,
			&r.Comment, &r.CreatedAt, &r.CreatedBy.Name, &r.CreatedBy.IsVerified); err != nil {
			return nil, eris.Wrap(err, "postgres: scan rating")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate ratings")
}

func (s *PostgresStore) AppendRating(ctx context.Context, r model.AreaRating) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO ratings (id, lat, lng, score, comment, created_at, author_name, verified) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.Location.Lat, r.Location.Lng, r.Score, r.Comment,
		r.CreatedAt.UTC(), r.CreatedBy.Name, r.CreatedBy.IsVerified,
	)
	return eris.Wrap(err, "postgres: insert rating")
}

func (s *PostgresStore) AddSOSEvent(ctx context.Context, e model.SOSEvent) (*model.SOSEvent, error) {
	if e.ID == "" {
		e.ID = "sos-" + uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sos_events (id, lat, lng, approximate, triggered_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Location.Lat, e.Location.Lng, e.Approximate, e.TriggeredAt.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert sos event")
	}
	return &e, nil
}

func (s *PostgresStore) ListSOSEvents(ctx context.Context) ([]model.SOSEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, lat, lng, approximate, triggered_at FROM sos_events ORDER BY triggered_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sos events")
	}
	defer rows.Close()

	var out []model.SOSEvent
	for rows.Next() {
		var e model.SOSEvent
		if err := rows.Scan(&e.ID, &e.Location.Lat, &e.Location.Lng, &e.Approximate, &e.TriggeredAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan sos event")
		}
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate sos events")
}

func (s *PostgresStore) AddCheckIn(ctx context.Context, c model.CheckIn) (*model.CheckIn, error) {
	if c.ID == "" {
		c.ID = "checkin-" + uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO checkins (id, lat, lng, checked_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Location.Lat, c.Location.Lng, c.CheckedAt.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert checkin")
	}
	return &c, nil
}

func (s *PostgresStore) ListCheckIns(ctx context.Context) ([]model.CheckIn, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, lat, lng, checked_at FROM checkins ORDER BY checked_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list checkins")
	}
	defer rows.Close()

	var out []model.CheckIn
	for rows.Next() {
		var c model.CheckIn
		if err := rows.Scan(&c.ID, &c.Location.Lat, &c.Location.Lng, &c.CheckedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan checkin")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate checkins")
}
