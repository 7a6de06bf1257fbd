package session

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Store {
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Load(ctx context.Context, deviceID string) (State, error) {
	const q = `
SELECT entry, value
FROM sessions
WHERE device_id = $1
`
	rows, err := s.pool.Query(ctx, q, deviceID)
	if err != nil {
		return State{}, err
	}
	defer rows.Close()

	var state State
	for rows.Next() {
		var entry, value string
		if err := rows.Scan(&entry, &value); err != nil {
			return State{}, err
		}
		switch entry {
		case entryCart:
			var lines []domain.LineItem
			if err := json.Unmarshal([]byte(value), &lines); err != nil {
				// Corrupt payload is treated as no prior state.
				s.logger.Printf("session: discarding malformed cart for device %s: %v", deviceID, err)
				continue
			}
			state.Lines = lines
		case entryCheckoutID:
			state.CheckoutID = value
		}
	}
	return state, rows.Err()
}

func (s *postgresStore) SaveCart(ctx context.Context, deviceID string, lines []domain.LineItem) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.upsert(ctx, deviceID, entryCart, string(payload))
}

func (s *postgresStore) SaveCheckoutID(ctx context.Context, deviceID, checkoutID string) error {
	return s.upsert(ctx, deviceID, entryCheckoutID, checkoutID)
}

func (s *postgresStore) Clear(ctx context.Context, deviceID string) error {
	const q = `
DELETE FROM sessions
WHERE device_id = $1
`
	_, err := s.pool.Exec(ctx, q, deviceID)
	return err
}

func (s *postgresStore) upsert(ctx context.Context, deviceID, entry, value string) error {
	const q = `
INSERT INTO sessions (device_id, entry, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (device_id, entry)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`
	_, err := s.pool.Exec(ctx, q, deviceID, entry, value)
	return err
}
