package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsAllowedMethods はクロスオリジンで許可するHTTPメソッド。
var corsAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// CORS は許可されたオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// allowedOriginsに "*" を含めるとすべてのオリジンを許可する。
// 資格情報付きリクエストを許可するため、ワイルドカードではなくリクエストのOriginをそのまま返す。
// プリフライトで要求されたヘッダーはすべて許可する。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		originsSet[o] = struct{}{}
	}
	methods := strings.Join(corsAllowedMethods, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		_, ok := originsSet[origin]
		if !allowAll && !ok {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Vary", "Origin")

		requestMethod := c.GetHeader("Access-Control-Request-Method")
		if c.Request.Method != http.MethodOptions || requestMethod == "" {
			c.Next()
			return
		}

		// プリフライトリクエスト
		if !slices.Contains(corsAllowedMethods, requestMethod) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "許可されていないメソッドです",
			})
			return
		}
		c.Header("Access-Control-Allow-Methods", methods)
		if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
			c.Header("Access-Control-Allow-Headers", requested)
		}
		c.Header("Access-Control-Max-Age", "600")
		c.AbortWithStatus(http.StatusNoContent)
	}
}
