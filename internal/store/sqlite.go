package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/suraksha-app/suraksha/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS profile (
	id               TEXT PRIMARY KEY,
	full_name        TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	phone            TEXT NOT NULL DEFAULT '',
	address          TEXT NOT NULL DEFAULT '',
	aadhaar_verified INTEGER NOT NULL DEFAULT 0,
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
	relation TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS guardian_mode (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	active     INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS settings (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	dark_mode         INTEGER NOT NULL DEFAULT 0,
	notifications     INTEGER NOT NULL DEFAULT 1,
	sound             INTEGER NOT NULL DEFAULT 1,
	location_tracking INTEGER NOT NULL DEFAULT 1,
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
	created_at DATETIME NOT NULL,
	read       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ratings (
	id          TEXT PRIMARY KEY,
	lat         REAL NOT NULL,
	lng         REAL NOT NULL,
	score       INTEGER NOT NULL,
	comment     TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	author_name TEXT NOT NULL DEFAULT '',
	verified    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sos_events (
	id           TEXT PRIMARY KEY,
	lat          REAL NOT NULL,
	lng          REAL NOT NULL,
	approximate  INTEGER NOT NULL DEFAULT 0,
	triggered_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS checkins (
	id         TEXT PRIMARY KEY,
	lat        REAL NOT NULL,
	lng        REAL NOT NULL,
	checked_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
CREATE INDEX IF NOT EXISTS idx_ratings_created_at ON ratings(created_at);

INSERT OR IGNORE INTO profile (id) VALUES ('user-1');
INSERT OR IGNORE INTO guardian_mode (id) VALUES (1);
INSERT OR IGNORE INTO settings (id) VALUES (1);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, phone, address, aadhaar_verified, aadhaar_number,
		        blood_group, allergies, medications
		 FROM profile LIMIT 1`,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Address, &p.AadhaarVerified,
		&p.AadhaarNumber, &p.BloodGroup, &p.Allergies, &p.Medications)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get profile")
	}
	return &p, nil
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, p model.Profile) (*model.Profile, error) {
	cur, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	p.ID = cur.ID
	_, err = s.db.ExecContext(ctx,
		`UPDATE profile SET full_name=?, email=?, phone=?, address=?, aadhaar_verified=?,
		        aadhaar_number=?, blood_group=?, allergies=?, medications=? WHERE id=?`,
		p.FullName, p.Email, p.Phone, p.Address, p.AadhaarVerified,
		p.AadhaarNumber, p.BloodGroup, p.Allergies, p.Medications, p.ID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: update profile")
	}
	return &p, nil
}

func (s *SQLiteStore) ListContacts(ctx context.Context) ([]model.EmergencyContact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email, relation FROM contacts ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contacts")
	}
	defer rows.Close()

	var out []model.EmergencyContact
	for rows.Next() {
		var c model.EmergencyContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Relation); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan contact")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate contacts")
}

func (s *SQLiteStore) AddContact(ctx context.Context, c model.EmergencyContact) (*model.EmergencyContact, error) {
	if c.ID == "" {
		c.ID = "contact-" + uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, phone, email, relation) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Phone, c.Email, c.Relation,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert contact")
	}
	return &c, nil
}

func (s *SQLiteStore) DeleteContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete contact")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetGuardianMode(ctx context.Context) (*model.GuardianState, error) {
	var g model.GuardianState
	err := s.db.QueryRowContext(ctx,
		`SELECT active, updated_at FROM guardian_mode WHERE id = 1`,
	).Scan(&g.Active, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get guardian mode")
	}
	return &g, nil
}

func (s *SQLiteStore) SetGuardianMode(ctx context.Context, active bool, now time.Time) (*model.GuardianState, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE guardian_mode SET active = ?, updated_at = ? WHERE id = 1`,
		active, now.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: set guardian mode")
	}
	return &model.GuardianState{Active: active, UpdatedAt: now.UTC()}, nil
}

func (s *SQLiteStore) GetSettings(ctx context.Context) (*model.Settings, error) {
	var st model.Settings
	err := s.db.QueryRowContext(ctx,
		`SELECT dark_mode, notifications, sound, location_tracking, privacy_mode,
		        check_in_interval, safety_radius
		 FROM settings WHERE id = 1`,
	).Scan(&st.DarkMode, &st.Notifications, &st.Sound, &st.LocationTracking,
		&st.PrivacyMode, &st.CheckInInterval, &st.SafetyRadius)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get settings")
	}
	return &st, nil
}

func (s *SQLiteStore) UpdateSettings(ctx context.Context, st model.Settings) (*model.Settings, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE settings SET dark_mode=?, notifications=?, sound=?, location_tracking=?,
		        privacy_mode=?, check_in_interval=?, safety_radius=? WHERE id = 1`,
		st.DarkMode, st.Notifications, st.Sound, st.LocationTracking,
		st.PrivacyMode, st.CheckInInterval, st.SafetyRadius,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: update settings")
	}
	return &st, nil
}

func (s *SQLiteStore) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, message, location, created_at, read
		 FROM alerts ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list alerts")
	}
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Location, &a.CreatedAt, &a.Read); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan alert")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate alerts")
}

func (s *SQLiteStore) AddAlert(ctx context.Context, a model.Alert) (*model.Alert, error) {
	if a.ID == "" {
		a.ID = "alert-" + uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alerts (id, type, title, message, location, created_at, read)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Type, a.Title, a.Message, a.Location, a.CreatedAt.UTC(), a.Read,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert alert")
	}
	return &a, nil
}

func (s *SQLiteStore) MarkAlertRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: mark alert read")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) MarkAllAlertsRead(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE alerts SET read = 1`)
	return eris.Wrap(err, "sqlite: mark all alerts read")
}

func (s *SQLiteStore) DeleteAlert(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete alert")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListRatings(ctx context.Context) ([]model.AreaRating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lat, lng, score, comment, created_at, author_name, verified
		 FROM ratings ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list ratings")
	}
	defer rows.Close()

	var out []model.AreaRating
	for rows.Next() {
		var r model.AreaRating
		if err := rows.Scan(&r.ID, &r.Location.Lat, &r.Location.Lng, &r.Score,
			&r.Comment, &r.CreatedAt, &r.CreatedBy.Name, &r.CreatedBy.IsVerified); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan rating")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate ratings")
}

func (s *SQLiteStore) AppendRating(ctx context.Context, r model.AreaRating) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings (id, lat, lng, score, comment, created_at, author_name, verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Location.Lat, r.Location.Lng, r.Score, r.Comment,
		r.CreatedAt.UTC(), r.CreatedBy.Name, r.CreatedBy.IsVerified,
	)
	return eris.Wrap(err, "sqlite: insert rating")
}

func (s *SQLiteStore) AddSOSEvent(ctx context.Context, e model.SOSEvent) (*model.SOSEvent, error) {
	if e.ID == "" {
		e.ID = "sos-" + uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sos_events (id, lat, lng, approximate, triggered_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Location.Lat, e.Location.Lng, e.Approximate, e.TriggeredAt.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert sos event")
	}
	return &e, nil
}

func (s *SQLiteStore) ListSOSEvents(ctx context.Context) ([]model.SOSEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lat, lng, approximate, triggered_at FROM sos_events ORDER BY triggered_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sos events")
	}
	defer rows.Close()

	var out []model.SOSEvent
	for rows.Next() {
		var e model.SOSEvent
		if err := rows.Scan(&e.ID, &e.Location.Lat, &e.Location.Lng, &e.Approximate, &e.TriggeredAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan sos event")
		}
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate sos events")
}

func (s *SQLiteStore) AddCheckIn(ctx context.Context, c model.CheckIn) (*model.CheckIn, error) {
	if c.ID == "" {
		c.ID = "checkin-" + uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkins (id, lat, lng, checked_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Location.Lat, c.Location.Lng, c.CheckedAt.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert checkin")
	}
	return &c, nil
}

func (s *SQLiteStore) ListCheckIns(ctx context.Context) ([]model.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lat, lng, checked_at FROM checkins ORDER BY checked_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list checkins")
	}
	defer rows.Close()

	var out []model.CheckIn
	for rows.Next() {
		var c model.CheckIn
		if err := rows.Scan(&c.ID, &c.Location.Lat, &c.Location.Lng, &c.CheckedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan checkin")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate checkins")
}
