package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WalkerBel92/evaluation/pkg/user"
)

// UserRepository implements user.Repository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	// The UNIQUE constraint on email is the store-level backstop for the
	// non-transactional duplicate check performed by the service.
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created TIMESTAMPTZ NOT NULL,
			modified TIMESTAMPTZ NOT NULL,
			last_login TIMESTAMPTZ NOT NULL,
			token TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE IF NOT EXISTS phones (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			number TEXT NOT NULL,
			city_code TEXT NOT NULL,
			country_code TEXT NOT NULL,
			position INT NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Save(ctx context.Context, u user.User) (user.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return user.User{}, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, email, password, created, modified, last_login, token, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password = EXCLUDED.password,
			modified = EXCLUDED.modified,
			last_login = EXCLUDED.last_login
	`, u.ID, u.Name, u.Email, u.Password, u.Created, u.Modified, u.LastLogin, u.Token, u.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}

	// Phones have no lifecycle of their own: rewrite the whole set.
	if _, err := tx.Exec(ctx, `DELETE FROM phones WHERE user_id = $1`, u.ID); err != nil {
		return user.User{}, err
	}
	for i, p := range u.Phones {
		_, err := tx.Exec(ctx, `
			INSERT INTO phones (id, user_id, number, city_code, country_code, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, u.ID, p.Number, p.CityCode, p.CountryCode, i)
		if err != nil {
			return user.User{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail matches the email exactly; lookups are case sensitive.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password, created, modified, last_login, token, is_active
		FROM users `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	phones, err := r.phonesFor(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	u.Phones = phones
	return u, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password, created, modified, last_login, token, is_active
		FROM users ORDER BY created
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range users {
		phones, err := r.phonesFor(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Phones = phones
	}
	return users, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// Phones go with the user via ON DELETE CASCADE.
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepository) phonesFor(ctx context.Context, userID uuid.UUID) ([]user.Phone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, number, city_code, country_code
		FROM phones WHERE user_id = $1 ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []user.Phone
	for rows.Next() {
		var p user.Phone
		if err := rows.Scan(&p.ID, &p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Created, &u.Modified, &u.LastLogin, &u.Token, &u.IsActive); err != nil {
		return user.User{}, err
	}
	u.Created = u.Created.UTC()
	u.Modified = u.Modified.UTC()
	u.LastLogin = u.LastLogin.UTC()
	return u, nil
}
