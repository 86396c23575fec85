// Package httpclient はTodo APIを呼び出すHTTPクライアントを提供する。
//
// Bearerトークンの付与、JSONのシリアライズ、エラーレスポンスの変換を共通化し、
// todoctlコマンドやエンドツーエンドテストから利用する。
package httpclient
