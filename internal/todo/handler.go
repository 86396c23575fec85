package todo

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/todo/pkg/middleware"
	"github.com/nao1215/todo/pkg/store"
)

// createTodoRequest はTodo作成リクエストのJSON構造。
// falseや空文字列を「未指定」と区別するためポインタで受け取る。
type createTodoRequest struct {
	// Title はTodoのタイトル。キーは必須だが空文字列は許可する。
	Title *string `json:"title" binding:"required"`
	// Completed は完了済みかどうか。
	Completed *bool `json:"completed" binding:"required"`
}

// updateTodoRequest はTodo更新リクエストのJSON構造。
type updateTodoRequest struct {
	// Title は新しいタイトル。nullまたは省略時はタイトルを変更しない。
	Title *string `json:"title"`
	// Completed は完了済みかどうか。
	Completed *bool `json:"completed" binding:"required"`
}

// updateTodoQuery はTodo更新リクエストのクエリパラメータ。
type updateTodoQuery struct {
	// TodoID は更新対象のTodoのID。
	TodoID string `form:"todo_id" binding:"required"`
}

// handleCreate はTodo作成を処理するハンドラを返す。
// 作成者を所有者としてTodoを保存し、採番されたIDを返す。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		var req createTodoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		id, err := s.todos.Create(c.Request.Context(), userID, store.NewTodo{
			Title:     *req.Title,
			Completed: *req.Completed,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Todoの作成に失敗しました"})
			log.Printf("Todo作成エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id, "message": "ToDo added"})
	}
}

// handleList はユーザーのTodo一覧取得を処理するハンドラを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		todos, err := s.todos.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Todo一覧の取得に失敗しました"})
			log.Printf("Todo一覧取得エラー: %v", err)
			return
		}
		if todos == nil {
			todos = []store.Todo{}
		}

		c.JSON(http.StatusOK, todos)
	}
}

// handleUpdate はTodo更新を処理するハンドラを返す。
// titleがあればtitleとcompletedを、なければcompletedのみを更新する。
// 所有者の確認は行わない。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query updateTodoQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("todo_idが不正です: %v", err)})
			return
		}

		var req updateTodoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		err := s.todos.Update(c.Request.Context(), query.TodoID, store.Patch{
			Title:     req.Title,
			Completed: *req.Completed,
		})
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todoが見つかりません"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Todoの更新に失敗しました"})
			log.Printf("Todo更新エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "ToDo updated"})
	}
}

// handleDelete はTodo削除を処理するハンドラを返す。
// 存在しないIDの削除も成功として扱う。所有者の確認は行わない。
func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID := c.Param("todo_id")

		if err := s.todos.Delete(c.Request.Context(), todoID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Todoの削除に失敗しました"})
			log.Printf("Todo削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "ToDo deleted"})
	}
}
