// Todo APIのコマンドラインクライアント。
// 接続先は TODO_API_URL、認証トークンは TODO_TOKEN 環境変数で指定する。
package main

import (
	"context"
	"flag"
	"os"

	"github.com/nao1215/todo/internal/cli"
)

func main() {
	baseURL := flag.String("url", getEnvOr("TODO_API_URL", "http://localhost:8080"), "Todo APIのベースURL")
	token := flag.String("token", os.Getenv("TODO_TOKEN"), "Bearerトークン")
	secret := flag.String("secret", getEnvOr("JWT_SECRET", "dev-secret-key"), "tokenサブコマンドで使うJWTシークレット")
	flag.Parse()

	os.Exit(cli.Run(context.Background(), flag.Args(), cli.Options{
		BaseURL:   *baseURL,
		Token:     *token,
		JWTSecret: *secret,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}))
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
