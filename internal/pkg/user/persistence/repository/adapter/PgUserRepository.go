package adapter

import (
	"context"
	"errors"
	"time"

	user "go-confab/internal/pkg/user/application/domain"
	repository "go-confab/internal/pkg/user/persistence/repository/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unique constraint violation
const uniqueViolationCode = "23505"

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) Create(ctx context.Context, u *user.User) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO app_user (id, name, email, password_hash, pic, is_admin, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $7)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Pic, u.IsAdmin, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM app_user WHERE id = $1::uuid", id)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM app_user WHERE email = $1", email)
}

func (r *PgUserRepository) Search(ctx context.Context, query, excludeID string) ([]user.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE (name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		  AND id <> $2::uuid
		ORDER BY name
		LIMIT 25
	`, query, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}

const userColumns = "id::text, name, email, password_hash, pic, is_admin, created_at, updated_at"

func (r *PgUserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var u user.User
	if err := scanUser(r.pool.QueryRow(ctx, query, arg), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *user.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Pic, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
}
