// Package auth はBearerトークンを検証し、認証済みユーザーを特定する仕組みを提供する。
//
// 検証処理はVerifierインターフェースとして抽象化されており、
// 共有シークレットで署名されたJWTを検証するJWTVerifierと、
// Firebase AuthenticationのIDトークンを検証するFirebaseVerifierを含む。
package auth
