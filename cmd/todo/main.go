// Todo APIサービスのエントリポイント。
// Bearerトークンで認証したユーザーごとにTodoのCRUDを提供する。
// 認証基盤と永続化先のクライアントは起動時に一度だけ生成する。
package main

import (
	"context"
	"log"

	"github.com/nao1215/todo/internal/todo"
)

func main() {
	cfg := todo.LoadConfig()

	deps, err := todo.Bootstrap(context.Background(), cfg)
	if err != nil {
		log.Fatalf("依存関係の初期化に失敗: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Printf("永続化先のクローズに失敗: %v", err)
		}
	}()

	server := todo.NewServer(cfg.Port, deps.Store, deps.Verifier, cfg.CORSAllowedOrigins)

	log.Printf("Todoサービスを起動します: :%s (auth=%s, store=%s)", cfg.Port, cfg.AuthBackend, cfg.StoreBackend)
	if err := server.Run(); err != nil {
		log.Printf("Todoサービスの起動に失敗: %v", err)
	}
}
