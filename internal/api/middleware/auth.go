package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/jwt"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/redis"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证会话 Token。
// 仅有 Bearer 头存在不够，签名必须验证通过，身份一律取自 claims。
// rdb 非 nil 时额外检查 Token 黑名单（登出后的 Token 拒绝放行）。
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis 出错时降级放行，签名验证仍然有效
			if err == nil && blacklisted {
				response.Unauthorized(c, "Invalid or expired token")
				c.Abort()
				return
			}
		}

		// 将认证身份注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}
