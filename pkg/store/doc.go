// Package store はTodoドキュメントの永続化を担当する。
//
// Storeインターフェースはユーザーごとに所有されるTodoの作成・一覧・部分更新・削除を表す。
// ローカル実行用のSQLiteStoreと、Cloud Firestoreの "todos" コレクションを
// 使用するFirestoreStoreの2つの実装を持つ。
package store
