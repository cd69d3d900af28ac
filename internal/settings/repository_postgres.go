package settings

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the settings row, creating it with defaults when missing.
func (r *PostgresRepository) Get() (Settings, error) {
	var s Settings
	err := r.db.QueryRow(`SELECT id, "deliveryFee", "freeDeliveryThreshold", currency, "siteName", "updatedAt" FROM settings ORDER BY id LIMIT 1`).
		Scan(&s.ID, &s.DeliveryFee, &s.FreeDeliveryThreshold, &s.Currency, &s.SiteName, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return r.create(Defaults())
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(s Settings) (Settings, error) {
	current, err := r.Get()
	if err != nil {
		return Settings{}, err
	}

	s.ID = current.ID
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	err = r.db.QueryRow(`UPDATE settings SET "deliveryFee" = $1, "freeDeliveryThreshold" = $2, currency = $3, "siteName" = $4, "updatedAt" = $5 WHERE id = $6
        RETURNING id, "deliveryFee", "freeDeliveryThreshold", currency, "siteName", "updatedAt"`,
		s.DeliveryFee, s.FreeDeliveryThreshold, s.Currency, s.SiteName, s.UpdatedAt, s.ID).
		Scan(&s.ID, &s.DeliveryFee, &s.FreeDeliveryThreshold, &s.Currency, &s.SiteName, &s.UpdatedAt)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (r *PostgresRepository) create(s Settings) (Settings, error) {
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRow(`INSERT INTO settings ("deliveryFee", "freeDeliveryThreshold", currency, "siteName", "updatedAt")
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, "deliveryFee", "freeDeliveryThreshold", currency, "siteName", "updatedAt"`,
		s.DeliveryFee, s.FreeDeliveryThreshold, s.Currency, s.SiteName, s.UpdatedAt).
		Scan(&s.ID, &s.DeliveryFee, &s.FreeDeliveryThreshold, &s.Currency, &s.SiteName, &s.UpdatedAt)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}
