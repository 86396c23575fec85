package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/todo/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用のJWTシークレット。
const testSecret = "test-secret-key-for-unit-tests"

// stubVerifier は固定の結果を返すテスト用Verifier。
type stubVerifier struct {
	claims *auth.Claims
	err    error
	calls  int
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*auth.Claims, error) {
	s.calls++
	return s.claims, s.err
}

// TestAuth はAuthミドルウェアを検証する。
func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("有効なトークンでユーザーIDとemailがコンテキストに設定されること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := auth.GenerateJWT(testSecret, "user-ok", "ok@example.com", time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT()でエラーが発生: %v", err)
		}

		var capturedUserID, capturedEmail string
		router := gin.New()
		router.Use(Auth(auth.NewJWTVerifier(testSecret)))
		router.GET("/test", func(c *gin.Context) {
			capturedUserID = GetUserID(c)
			capturedEmail = c.GetString("email")
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if capturedUserID != "user-ok" {
			t.Errorf("user_id = %q, want %q", capturedUserID, "user-ok")
		}
		if capturedEmail != "ok@example.com" {
			t.Errorf("email = %q, want %q", capturedEmail, "ok@example.com")
		}
	})

	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{
			name:       "Authorizationヘッダーがない",
			header:     "",
			verifier:   &stubVerifier{claims: &auth.Claims{UID: "u"}},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Authorizationヘッダーが必要です",
			wantCalls:  0,
		},
		{
			name:       "Bearer接頭辞がない",
			header:     "Token abc",
			verifier:   &stubVerifier{claims: &auth.Claims{UID: "u"}},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Bearer トークン形式が不正です",
			wantCalls:  0,
		},
		{
			name:       "小文字のbearer接頭辞",
			header:     "bearer abc",
			verifier:   &stubVerifier{claims: &auth.Claims{UID: "u"}},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Bearer トークン形式が不正です",
			wantCalls:  0,
		},
		{
			name:       "検証で拒否されたトークン",
			header:     "Bearer rejected",
			verifier:   &stubVerifier{err: auth.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			wantError:  "トークンが無効です",
			wantCalls:  1,
		},
		{
			name:       "検証基盤の障害",
			header:     "Bearer whatever",
			verifier:   &stubVerifier{err: errors.New("certificate fetch failed")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "トークンを検証できませんでした",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name+"場合は後続のハンドラが呼ばれないこと", func(t *testing.T) {
			t.Parallel()

			handlerCalled := false
			router := gin.New()
			router.Use(Auth(tt.verifier))
			router.GET("/test", func(c *gin.Context) {
				handlerCalled = true
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ステータスコード = %d, want %d", w.Code, tt.wantStatus)
			}
			if handlerCalled {
				t.Error("認証失敗時にハンドラーが呼ばれるべきではない")
			}
			if tt.verifier.calls != tt.wantCalls {
				t.Errorf("Verify呼び出し回数 = %d, want %d", tt.verifier.calls, tt.wantCalls)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("レスポンスボディのパースに失敗: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}

// TestGetUserID はGetUserID関数を検証する。
func TestGetUserID(t *testing.T) {
	t.Parallel()

	t.Run("未設定の場合は空文字列を返すこと", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if got := GetUserID(c); got != "" {
			t.Errorf("GetUserID() = %q, want empty string", got)
		}
	})

	t.Run("設定済みの場合はその値を返すこと", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("user_id", "user-set")
		if got := GetUserID(c); got != "user-set" {
			t.Errorf("GetUserID() = %q, want %q", got, "user-set")
		}
	})
}
