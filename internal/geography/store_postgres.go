package geography

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"veriadmin/pkg/platform/tx"
)

// PostgresSource reads the dataset from three tables. Ordering follows the
// position column so that it matches the order the data was seeded in.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS geo_countries (
	code     TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	position INT  NOT NULL
);
CREATE TABLE IF NOT EXISTS geo_states (
	country_code TEXT NOT NULL REFERENCES geo_countries(code) ON DELETE CASCADE,
	code         TEXT NOT NULL,
	name         TEXT NOT NULL,
	position     INT  NOT NULL,
	PRIMARY KEY (country_code, code)
);
CREATE TABLE IF NOT EXISTS geo_cities (
	country_code TEXT NOT NULL,
	state_code   TEXT NOT NULL,
	name         TEXT NOT NULL,
	position     INT  NOT NULL,
	PRIMARY KEY (country_code, state_code, name),
	FOREIGN KEY (country_code, state_code) REFERENCES geo_states(country_code, code) ON DELETE CASCADE
);`

// EnsureSchema creates the dataset tables if missing.
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create geography schema: %w", err)
	}
	return nil
}

// Seed replaces the stored dataset with countries in one transaction. It
// joins a transaction already carried by ctx.
func (s *PostgresSource) Seed(ctx context.Context, countries []Country) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		q := tx.QuerierFrom(ctx, s.db)
		if _, err := q.ExecContext(ctx, `DELETE FROM geo_countries`); err != nil {
			return fmt.Errorf("clear countries: %w", err)
		}
		for ci, c := range countries {
			if _, err := q.ExecContext(ctx,
				`INSERT INTO geo_countries (code, name, position) VALUES ($1, $2, $3)`,
				c.Code, c.Name, ci); err != nil {
				return fmt.Errorf("insert country %s: %w", c.Code, err)
			}
			for si, st := range c.States {
				if _, err := q.ExecContext(ctx,
					`INSERT INTO geo_states (country_code, code, name, position) VALUES ($1, $2, $3, $4)`,
					c.Code, st.Code, st.Name, si); err != nil {
					return fmt.Errorf("insert state %s/%s: %w", c.Code, st.Code, err)
				}
				if len(st.Cities) == 0 {
					continue
				}
				if _, err := q.ExecContext(ctx, `
					INSERT INTO geo_cities (country_code, state_code, name, position)
					SELECT $1, $2, t.name, t.ord - 1
					FROM unnest($3::text[]) WITH ORDINALITY AS t(name, ord)`,
					c.Code, st.Code, pq.Array(st.Cities)); err != nil {
					return fmt.Errorf("insert cities %s/%s: %w", c.Code, st.Code, err)
				}
			}
		}
		return nil
	})
}

func (s *PostgresSource) ListCountries(ctx context.Context) ([]Option, error) {
	return s.query(ctx, `SELECT code, name FROM geo_countries ORDER BY position, code`)
}

func (s *PostgresSource) ListStates(ctx context.Context, countryCode string) ([]Option, error) {
	return s.query(ctx,
		`SELECT code, name FROM geo_states WHERE country_code = $1 ORDER BY position, code`,
		countryCode)
}

func (s *PostgresSource) ListCities(ctx context.Context, countryCode, stateCode string) ([]Option, error) {
	return s.query(ctx,
		`SELECT name, name FROM geo_cities WHERE country_code = $1 AND state_code = $2 ORDER BY position, name`,
		countryCode, stateCode)
}

func (s *PostgresSource) query(ctx context.Context, q string, args ...any) ([]Option, error) {
	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, q, args...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewSourceError(ErrorTimeout, "postgres", "query cancelled", err)
		}
		return nil, NewSourceError(ErrorOutage, "postgres", "query failed", err)
	}
	defer rows.Close()

	out := []Option{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.Code, &o.Name); err != nil {
			return nil, NewSourceError(ErrorBadData, "postgres", "scan option", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, NewSourceError(ErrorOutage, "postgres", "iterate options", err)
	}
	return out, nil
}
