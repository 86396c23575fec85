package store

import (
	"context"
	"errors"
	"testing"
)

// runStoreTests はStore実装が満たすべき振る舞いを検証する。
// newStore は呼び出しごとに空のStoreを返すこと。
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	ctx := context.Background()

	t.Run("作成したTodoが所有者の一覧に含まれること", func(t *testing.T) {
		s := newStore(t)

		id, err := s.Create(ctx, "user-u", NewTodo{Title: "x", Completed: false})
		if err != nil {
			t.Fatalf("Create()でエラーが発生: %v", err)
		}
		if id == "" {
			t.Fatal("Create()が空のIDを返した")
		}

		todos, err := s.ListByUser(ctx, "user-u")
		if err != nil {
			t.Fatalf("ListByUser()でエラーが発生: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("件数 = %d; 期待値 = 1", len(todos))
		}
		want := Todo{ID: id, UserID: "user-u", Title: "x", Completed: false}
		if todos[0] != want {
			t.Errorf("Todo = %+v; 期待値 = %+v", todos[0], want)
		}
	})

	t.Run("他のユーザーのTodoは一覧に含まれないこと", func(t *testing.T) {
		s := newStore(t)

		if _, err := s.Create(ctx, "user-u", NewTodo{Title: "u's"}); err != nil {
			t.Fatalf("Create()でエラーが発生: %v", err)
		}

		todos, err := s.ListByUser(ctx, "user-v")
		if err != nil {
			t.Fatalf("ListByUser()でエラーが発生: %v", err)
		}
		if todos == nil {
			t.Error("該当なしの場合はnilではなく空スライスを返すべき")
		}
		if len(todos) != 0 {
			t.Errorf("件数 = %d; 期待値 = 0", len(todos))
		}
	})

	t.Run("completedのみの更新ではタイトルが変わらないこと", func(t *testing.T) {
		s := newStore(t)

		id, err := s.Create(ctx, "user-u", NewTodo{Title: "keep me"})
		if err != nil {
			t.Fatalf("Create()でエラーが発生: %v", err)
		}
		if err := s.Update(ctx, id, Patch{Completed: true}); err != nil {
			t.Fatalf("Update()でエラーが発生: %v", err)
		}

		todos, err := s.ListByUser(ctx, "user-u")
		if err != nil {
			t.Fatalf("ListByUser()でエラーが発生: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("件数 = %d; 期待値 = 1", len(todos))
		}
		if todos[0].Title != "keep me" {
			t.Errorf("title = %q; 期待値 = %q", todos[0].Title, "keep me")
		}
		if !todos[0].Completed {
			t.Error("completed が true になっていない")
		}
	})

	t.Run("タイトルとcompletedを同時に更新できること", func(t *testing.T) {
		s := newStore(t)

		id, err := s.Create(ctx, "user-u", NewTodo{Title: "before", Completed: true})
		if err != nil {
			t.Fatalf("Create()でエラーが発生: %v", err)
		}
		title := "after"
		if err := s.Update(ctx, id, Patch{Title: &title, Completed: false}); err != nil {
			t.Fatalf("Update()でエラーが発生: %v", err)
		}

		todos, err := s.ListByUser(ctx, "user-u")
		if err != nil {
			t.Fatalf("ListByUser()でエラーが発生: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("件数 = %d; 期待値 = 1", len(todos))
		}
		if todos[0].Title != "after" || todos[0].Completed {
			t.Errorf("Todo = %+v; 期待値 title=after completed=false", todos[0])
		}
		if todos[0].UserID != "user-u" {
			t.Errorf("user_id = %q; 所有者は変更されないべき", todos[0].UserID)
		}
	})

	t.Run("存在しないTodoの更新はErrNotFoundになること", func(t *testing.T) {
		s := newStore(t)

		if err := s.Update(ctx, "no-such-todo", Patch{Completed: true}); !errors.Is(err, ErrNotFound) {
			t.Errorf("Update() error = %v; 期待値 = ErrNotFound", err)
		}
	})

	t.Run("同じTodoを2回削除してもエラーにならないこと", func(t *testing.T) {
		s := newStore(t)

		id, err := s.Create(ctx, "user-u", NewTodo{Title: "delete me"})
		if err != nil {
			t.Fatalf("Create()でエラーが発生: %v", err)
		}
		if err := s.Delete(ctx, id); err != nil {
			t.Fatalf("1回目のDelete()でエラーが発生: %v", err)
		}
		if err := s.Delete(ctx, id); err != nil {
			t.Errorf("2回目のDelete()でエラーが発生: %v", err)
		}

		todos, err := s.ListByUser(ctx, "user-u")
		if err != nil {
			t.Fatalf("ListByUser()でエラーが発生: %v", err)
		}
		if len(todos) != 0 {
			t.Errorf("件数 = %d; 期待値 = 0", len(todos))
		}
	})
}
