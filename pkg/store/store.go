package store

import (
	"context"
	"errors"
)

// ErrNotFound は指定したIDのTodoが存在しないことを表す。
var ErrNotFound = errors.New("Todoが見つかりません")

// Todo はユーザーが所有するTodoドキュメント。
// UserIDは作成時に決まり、以後変更されない。
type Todo struct {
	// ID はストアが採番する不透明な識別子。
	ID string `json:"id"`
	// UserID はTodoを作成したユーザーのID。
	UserID string `json:"user_id"`
	// Title はTodoのタイトル。
	Title string `json:"title"`
	// Completed は完了済みかどうか。
	Completed bool `json:"completed"`
}

// NewTodo はTodo作成時の入力。
type NewTodo struct {
	Title     string
	Completed bool
}

// Patch はTodoの部分更新内容。
// Titleがnilの場合はCompletedのみを更新する。
type Patch struct {
	Title     *string
	Completed bool
}

// Store はTodoドキュメントの永続化先。
// 実装は複数のリクエストから並行に呼び出されても安全でなければならない。
type Store interface {
	// Create はuserIDが所有するTodoを作成し、採番したIDを返す。
	Create(ctx context.Context, userID string, in NewTodo) (string, error)
	// ListByUser はuserIDが所有するTodoをすべて返す。該当がない場合は空スライスを返す。
	ListByUser(ctx context.Context, userID string) ([]Todo, error)
	// Update はTodoを部分更新する。存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, id string, patch Patch) error
	// Delete はTodoを削除する。存在しないIDの削除はエラーにならない。
	Delete(ctx context.Context, id string) error
	// Close は保持している接続を解放する。
	Close() error
}
