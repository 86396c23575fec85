package httpclient

import (
	"context"
	"net/url"
)

// Todo はAPIが返すTodo。
type Todo struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// MessageResponse は更新系APIのレスポンス。
type MessageResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// TodoUpdate はTodo更新リクエスト。Titleがnilの場合はcompletedのみを更新する。
type TodoUpdate struct {
	Title     *string `json:"title,omitempty"`
	Completed bool    `json:"completed"`
}

// CreateTodo はTodoを作成し、採番されたIDを返す。
func (c *Client) CreateTodo(ctx context.Context, title string, completed bool) (string, error) {
	var resp MessageResponse
	body := map[string]any{"title": title, "completed": completed}
	if err := c.PostJSON(ctx, "/todos", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ListTodos は認証済みユーザーのTodo一覧を返す。
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.GetJSON(ctx, "/todos", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo はTodoを部分更新する。
func (c *Client) UpdateTodo(ctx context.Context, id string, update TodoUpdate) error {
	return c.PutJSON(ctx, "/todos?todo_id="+url.QueryEscape(id), update, nil)
}

// DeleteTodo はTodoを削除する。
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.Delete(ctx, "/todos/"+url.PathEscape(id), nil)
}
