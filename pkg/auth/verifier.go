package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken はトークンが不正・期限切れ・署名不一致のいずれかであることを表す。
var ErrInvalidToken = errors.New("トークンが無効です")

// Claims はトークン検証に成功した結果得られるユーザー属性。
type Claims struct {
	// UID は認証済みユーザーの一意識別子。
	UID string
	// Email はユーザーのメールアドレス。トークンに含まれない場合は空文字列。
	Email string
}

// Verifier はBearerトークンを外部の認証基盤で検証する。
// 実装はプロセス全体で共有されるため、並行呼び出しに対して安全でなければならない。
type Verifier interface {
	// Verify はトークンを検証し、クレームを返す。
	// 検証に失敗した場合はErrInvalidTokenをラップしたエラーを返す。
	Verify(ctx context.Context, token string) (*Claims, error)
}
