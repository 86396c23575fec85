package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/nao1215/todo/pkg/migration"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore はSQLiteにTodoを保存するStore。
type SQLiteStore struct {
	db *sql.DB
}

// SQLiteDSN はファイルパスからWALモードとbusy_timeoutを有効にしたDSNを組み立てる。
// ":memory:" はそのままインメモリデータベースとして扱う。
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + q.Encode()
}

// OpenSQLite はSQLiteデータベースに接続し、マイグレーションを適用する。
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// SQLiteの書き込みは直列化されるため接続は1本に絞る。:memory: の共有にも必要。
	db.SetMaxOpenConns(1)

	if _, err := migration.Run(ctx, db, migrationsFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("マイグレーションに失敗: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Create はUUIDを採番してTodoを挿入する。
func (s *SQLiteStore) Create(ctx context.Context, userID string, in NewTodo) (string, error) {
	id := uuid.New().String()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, title, completed) VALUES (?, ?, ?, ?)`,
		id, userID, in.Title, in.Completed,
	); err != nil {
		return "", fmt.Errorf("Todoの挿入に失敗: %w", err)
	}
	return id, nil
}

// ListByUser はuserIDが所有するTodoを作成順に返す。
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, completed FROM todos WHERE user_id = ? ORDER BY created_at, rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("Todo一覧の取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	todos := make([]Todo, 0)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed); err != nil {
			return nil, fmt.Errorf("Todoの読み取りに失敗: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Todo一覧の走査に失敗: %w", err)
	}
	return todos, nil
}

// Update はTitleの有無に応じてtitleとcompleted、またはcompletedのみを更新する。
func (s *SQLiteStore) Update(ctx context.Context, id string, patch Patch) error {
	var (
		res sql.Result
		err error
	)
	if patch.Title != nil {
		res, err = s.db.ExecContext(ctx,
			`UPDATE todos SET title = ?, completed = ?, updated_at = datetime('now') WHERE id = ?`,
			*patch.Title, patch.Completed, id,
		)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE todos SET completed = ?, updated_at = datetime('now') WHERE id = ?`,
			patch.Completed, id,
		)
	}
	if err != nil {
		return fmt.Errorf("Todoの更新に失敗: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新件数の取得に失敗: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete はTodoを削除する。該当行がなくてもエラーにしない。
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("Todoの削除に失敗: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
