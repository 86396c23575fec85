package todo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/nao1215/todo/pkg/auth"
	"github.com/nao1215/todo/pkg/store"
	"google.golang.org/api/option"
)

// 認証基盤の種類。
const (
	AuthBackendJWT      = "jwt"
	AuthBackendFirebase = "firebase"
)

// 永続化先の種類。
const (
	StoreBackendSQLite    = "sqlite"
	StoreBackendFirestore = "firestore"
)

// defaultJWTSecret は開発用のJWTシークレット。
const defaultJWTSecret = "dev-secret-key"

// Config はTodo APIサービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// AuthBackend はトークン検証に使う認証基盤（jwt / firebase）。
	AuthBackend string
	// JWTSecret はjwt認証基盤で使うHS256の共有シークレット。
	JWTSecret string
	// StoreBackend はTodoの永続化先（sqlite / firestore）。
	StoreBackend string
	// SQLitePath はsqlite永続化先のファイルパス。
	SQLitePath string
	// FirebaseProjectID はFirebase / FirestoreのプロジェクトID。
	FirebaseProjectID string
	// FirebaseCredentialsFile はサービスアカウントJSONのパス。空の場合はADCを使う。
	FirebaseCredentialsFile string
	// CORSAllowedOrigins はCORSで許可するオリジン。"*" はすべてを許可する。
	CORSAllowedOrigins []string
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() Config {
	return Config{
		Port:                    getEnvOr("PORT", "8080"),
		AuthBackend:             getEnvOr("AUTH_BACKEND", AuthBackendJWT),
		JWTSecret:               getEnvOr("JWT_SECRET", defaultJWTSecret),
		StoreBackend:            getEnvOr("STORE_BACKEND", StoreBackendSQLite),
		SQLitePath:              getEnvOr("SQLITE_PATH", "/data/todo.db"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		CORSAllowedOrigins:      splitList(getEnvOr("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// Validate は設定値の組み合わせを検証する。
func (c Config) Validate() error {
	var errs []error
	switch c.AuthBackend {
	case AuthBackendJWT:
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRETが空です"))
		}
	case AuthBackendFirebase:
	default:
		errs = append(errs, fmt.Errorf("不明なAUTH_BACKENDです: %q", c.AuthBackend))
	}

	switch c.StoreBackend {
	case StoreBackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATHが空です"))
		}
	case StoreBackendFirestore:
	default:
		errs = append(errs, fmt.Errorf("不明なSTORE_BACKENDです: %q", c.StoreBackend))
	}
	return errors.Join(errs...)
}

func (c Config) usesFirebase() bool {
	return c.AuthBackend == AuthBackendFirebase || c.StoreBackend == StoreBackendFirestore
}

// Dependencies はプロセス起動時に一度だけ生成する外部サービスのクライアント。
type Dependencies struct {
	// Store はTodoの永続化先。
	Store store.Store
	// Verifier はBearerトークンの検証器。
	Verifier auth.Verifier
}

// Close は保持している接続を解放する。
func (d *Dependencies) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// Bootstrap は設定に従って認証基盤と永続化先のクライアントを生成する。
func Bootstrap(ctx context.Context, cfg Config) (*Dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}

	var app *firebase.App
	if cfg.usesFirebase() {
		var err error
		app, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	verifier, err := newVerifier(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	todos, err := newStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	return &Dependencies{Store: todos, Verifier: verifier}, nil
}

func newFirebaseApp(ctx context.Context, cfg Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firebaseアプリの初期化に失敗: %w", err)
	}
	return app, nil
}

func newVerifier(ctx context.Context, cfg Config, app *firebase.App) (auth.Verifier, error) {
	if cfg.AuthBackend == AuthBackendFirebase {
		return auth.NewFirebaseVerifier(ctx, app)
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Printf("警告: 開発用のJWT_SECRETを使用しています")
	}
	return auth.NewJWTVerifier(cfg.JWTSecret), nil
}

func newStore(ctx context.Context, cfg Config, app *firebase.App) (store.Store, error) {
	if cfg.StoreBackend == StoreBackendFirestore {
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("Firestoreクライアントの初期化に失敗: %w", err)
		}
		return store.NewFirestoreStore(client), nil
	}

	s, err := store.OpenSQLite(ctx, store.SQLiteDSN(cfg.SQLitePath))
	if err != nil {
		return nil, fmt.Errorf("SQLiteの初期化に失敗: %w", err)
	}
	return s, nil
}

// getEnvOr は環境変数の値を返す。未設定または空の場合はfallbackを返す。
func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList はカンマ区切りの文字列を空要素を除いたスライスに分割する。
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
