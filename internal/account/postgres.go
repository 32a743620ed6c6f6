package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB は利用するpgxプール操作のサブセットです。
// *pgxpool.Pool とテスト用の pgxmock の双方が満たします。
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository はRepositoryのPostgreSQL実装です。
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository はPostgresRepositoryを作成します。
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create はアカウントを1件挿入します。
// メールアドレスの一意制約違反は ErrDuplicateEmail として返します。
func (r *PostgresRepository) Create(ctx context.Context, a *Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Email, a.PasswordHash, a.Salt, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByEmail はメールアドレスでアカウントを検索します。
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, salt, created_at
		FROM accounts
		WHERE email = $1
	`, email)
	return scanAccount(row)
}

// GetByID はIDでアカウントを検索します。
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, salt, created_at
		FROM accounts
		WHERE id = $1
	`, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*Account, error) {
	a := &Account{}
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Salt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}
