package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// idTokenVerifier はFirebase Authクライアントのうち、IDトークン検証に必要な部分。
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier はFirebase AuthenticationでIDトークンを検証するVerifier。
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier はFirebaseアプリからAuthクライアントを取得してVerifierを生成する。
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("Firebase Authクライアントの初期化に失敗: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify はIDトークンをFirebaseに問い合わせて検証する。
// 検証結果はキャッシュせず、リトライもしない。
// 公開鍵の取得失敗はErrInvalidTokenとは区別して返す。
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if fbauth.IsCertificateFetchFailed(err) {
			// 公開鍵を取得できない場合はトークンの正否を判断できない
			return nil, fmt.Errorf("Firebase公開鍵の取得に失敗: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if decoded.UID == "" {
		return nil, fmt.Errorf("%w: uidが含まれていません", ErrInvalidToken)
	}

	claims := &Claims{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}
