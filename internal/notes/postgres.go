package notes

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

// Create はノートを1件挿入します。
// 所有者アカウントの外部キー制約違反は ErrAccountMissing として返します。
func (r *PostgresRepository) Create(ctx context.Context, n *Note) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notes (id, account_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.AccountID, n.Text, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrAccountMissing
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListByAccount はアカウントのノートを新しい順に返します。
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, text, created_at, updated_at
		FROM notes
		WHERE account_id = $1
		ORDER BY created_at DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	result := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Text, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return result, nil
}
