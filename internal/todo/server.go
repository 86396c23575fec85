package todo

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/todo/pkg/auth"
	"github.com/nao1215/todo/pkg/middleware"
	"github.com/nao1215/todo/pkg/store"
)

// Server はTodo APIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// todos はTodoの永続化先。
	todos store.Store
	// verifier はBearerトークンの検証器。
	verifier auth.Verifier
}

// NewServer は新しいTodo APIサーバーを生成する。
// todosとverifierはプロセス全体で共有され、Serverはそれらを閉じない。
func NewServer(port string, todos store.Store, verifier auth.Verifier, corsOrigins []string) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(corsOrigins))

	s := &Server{
		router:   router,
		port:     port,
		todos:    todos,
		verifier: verifier,
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Handler はサーバーのHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "todo"})
	})

	todos := s.router.Group("/todos")
	todos.Use(middleware.Auth(s.verifier))
	{
		// Todo作成
		todos.POST("", s.handleCreate())
		// Todo一覧取得
		todos.GET("", s.handleList())
		// Todo更新（クエリパラメータ: todo_id）
		todos.PUT("", s.handleUpdate())
		// Todo削除
		todos.DELETE("/:todo_id", s.handleDelete())
	}
}
