package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CollectionTodos はTodoを保存するFirestoreコレクション名。
const CollectionTodos = "todos"

// firestoreTodo はFirestoreドキュメントのフィールド構成。
// ドキュメントIDはフィールドに含めず、ドキュメント参照から取得する。
type firestoreTodo struct {
	UserID    string `firestore:"user_id"`
	Title     string `firestore:"title"`
	Completed bool   `firestore:"completed"`
}

// FirestoreStore はCloud FirestoreにTodoを保存するStore。
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore はFirestoreクライアントからStoreを生成する。
// クライアントの所有権はStoreに移り、Closeで解放される。
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, collection: CollectionTodos}
}

// Create は自動採番IDのドキュメントを作成する。
func (s *FirestoreStore) Create(ctx context.Context, userID string, in NewTodo) (string, error) {
	ref := s.client.Collection(s.collection).NewDoc()
	if _, err := ref.Set(ctx, firestoreTodo{
		UserID:    userID,
		Title:     in.Title,
		Completed: in.Completed,
	}); err != nil {
		return "", fmt.Errorf("Todoドキュメントの作成に失敗: %w", err)
	}
	return ref.ID, nil
}

// ListByUser はuser_idが一致するドキュメントを返す。順序はFirestoreに従う。
func (s *FirestoreStore) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	iter := s.client.Collection(s.collection).Where("user_id", "==", userID).Documents(ctx)
	defer iter.Stop()

	todos := make([]Todo, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Todo一覧の取得に失敗: %w", err)
		}

		var rec firestoreTodo
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("Todoドキュメント %s の変換に失敗: %w", doc.Ref.ID, err)
		}
		todos = append(todos, Todo{
			ID:        doc.Ref.ID,
			UserID:    rec.UserID,
			Title:     rec.Title,
			Completed: rec.Completed,
		})
	}
	return todos, nil
}

// Update はドキュメントのフィールドを部分更新する。
// Firestoreは存在しないドキュメントの更新をNotFoundで拒否する。
func (s *FirestoreStore) Update(ctx context.Context, id string, patch Patch) error {
	updates := []firestore.Update{{Path: "completed", Value: patch.Completed}}
	if patch.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *patch.Title})
	}

	ref := s.client.Collection(s.collection).Doc(id)
	if ref == nil {
		// スラッシュを含むIDや空文字列はドキュメント参照にならない。
		return ErrNotFound
	}
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("Todoドキュメントの更新に失敗: %w", err)
	}
	return nil
}

// Delete はドキュメントを削除する。存在しないドキュメントの削除は成功扱いになる。
func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	ref := s.client.Collection(s.collection).Doc(id)
	if ref == nil {
		return nil
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("Todoドキュメントの削除に失敗: %w", err)
	}
	return nil
}

// Close はFirestoreクライアントを閉じる。
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
