// Package todo はTodo APIサービスの内部実装を提供する。
//
// Bearerトークンで認証されたユーザーごとに、Todoの作成・一覧・更新・削除を行う。
// トークン検証はauth.Verifierに、永続化はstore.Storeに委譲し、
// どちらもプロセス起動時に一度だけ生成してServerに注入する。
package todo
