// Package cli はtodoctlコマンドのサブコマンドを実装する。
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/todo/pkg/auth"
	"github.com/nao1215/todo/pkg/httpclient"
)

// Options はサブコマンド共通の設定。
type Options struct {
	// BaseURL はTodo APIのベースURL。
	BaseURL string
	// Token はAPI呼び出しに使うBearerトークン。
	Token string
	// JWTSecret はtokenサブコマンドで署名に使うシークレット。
	JWTSecret string
	// Stdout は通常出力の書き込み先。
	Stdout io.Writer
	// Stderr はエラー出力の書き込み先。
	Stderr io.Writer
}

// Run はサブコマンドを実行し、終了コードを返す（0: 成功, 1: エラー, 2: 使い方の誤り）。
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0
	case "token":
		if len(a) != 1 {
			return usage(opt, "todoctl token <uid>")
		}
		return doToken(opt, a[0])
	}

	client := httpclient.New(opt.BaseURL, httpclient.WithToken(opt.Token))

	var err error
	switch cmd {
	case "ls":
		err = doList(ctx, client, opt.Stdout)
	case "add":
		if len(a) == 0 {
			return usage(opt, "todoctl add <title...>")
		}
		err = doAdd(ctx, client, opt.Stdout, strings.Join(a, " "))
	case "done", "undone":
		if len(a) != 1 {
			return usage(opt, fmt.Sprintf("todoctl %s <id>", cmd))
		}
		err = doSetCompleted(ctx, client, opt.Stdout, a[0], cmd == "done")
	case "rename":
		if len(a) < 2 {
			return usage(opt, "todoctl rename <id> <title...>")
		}
		err = doRename(ctx, client, opt.Stdout, a[0], strings.Join(a[1:], " "))
	case "rm":
		if len(a) != 1 {
			return usage(opt, "todoctl rm <id>")
		}
		err = doRemove(ctx, client, opt.Stdout, a[0])
	default:
		fmt.Fprintf(opt.Stderr, "不明なサブコマンドです: %s\n\n", cmd)
		PrintHelp(opt.Stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(opt.Stderr, "%s: %v\n", cmd, err)
		return 1
	}
	return 0
}

// PrintHelp は使い方を出力する。
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todoctl - Todo APIクライアント

Usage:
  todoctl [flags] <subcommand> [args]

Subcommands:
  token <uid>             開発用JWTを発行する
  ls                      Todo一覧を表示する
  add <title...>          Todoを追加する
  done <id>               Todoを完了にする
  undone <id>             Todoを未完了に戻す
  rename <id> <title...>  Todoのタイトルを変更する（完了状態は維持）
  rm <id>                 Todoを削除する
`)
}

func usage(opt Options, line string) int {
	fmt.Fprintf(opt.Stderr, "usage: %s\n", line)
	return 2
}

func doToken(opt Options, uid string) int {
	token, err := auth.GenerateJWT(opt.JWTSecret, uid, "", 24*time.Hour)
	if err != nil {
		fmt.Fprintf(opt.Stderr, "token: %v\n", err)
		return 1
	}
	fmt.Fprintln(opt.Stdout, token)
	return 0
}

func doList(ctx context.Context, client *httpclient.Client, w io.Writer) error {
	todos, err := client.ListTodos(ctx)
	if err != nil {
		return err
	}
	if len(todos) == 0 {
		fmt.Fprintln(w, "Todoはありません")
		return nil
	}
	for _, t := range todos {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %s  %s\n", mark, t.ID, t.Title)
	}
	return nil
}

func doAdd(ctx context.Context, client *httpclient.Client, w io.Writer, title string) error {
	id, err := client.CreateTodo(ctx, title, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "追加しました: %s\n", id)
	return nil
}

func doSetCompleted(ctx context.Context, client *httpclient.Client, w io.Writer, id string, completed bool) error {
	if err := client.UpdateTodo(ctx, id, httpclient.TodoUpdate{Completed: completed}); err != nil {
		return err
	}
	fmt.Fprintf(w, "更新しました: %s\n", id)
	return nil
}

// doRename はタイトルを変更する。APIはtitle指定時にcompletedも上書きするため、
// 現在の完了状態を一覧から取得して引き継ぐ。
func doRename(ctx context.Context, client *httpclient.Client, w io.Writer, id, title string) error {
	todos, err := client.ListTodos(ctx)
	if err != nil {
		return err
	}
	completed := false
	for _, t := range todos {
		if t.ID == id {
			completed = t.Completed
			break
		}
	}

	if err := client.UpdateTodo(ctx, id, httpclient.TodoUpdate{Title: &title, Completed: completed}); err != nil {
		return err
	}
	fmt.Fprintf(w, "更新しました: %s\n", id)
	return nil
}

func doRemove(ctx context.Context, client *httpclient.Client, w io.Writer, id string) error {
	if err := client.DeleteTodo(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(w, "削除しました: %s\n", id)
	return nil
}
