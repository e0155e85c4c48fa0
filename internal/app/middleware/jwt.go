package middleware

import (
	"net/http"
	"strings"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/domain/services"
	"desk-management-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticateWithRoles 校验令牌并限定角色集合
func authenticateWithRoles(permissionMessage string, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Authorization header is required",
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 提取token
		tokenString := extractToken(authHeader)
		token, err := jwtService.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid or expired token",
				"data":    nil,
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid token claims",
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 校验角色
		role, exists := claims["role"].(string)
		roleAllowed := false
		if exists {
			for _, a := range allowed {
				if role == a {
					roleAllowed = true
					break
				}
			}
		}
		if !roleAllowed {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": permissionMessage,
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 存储claims到上下文
		c.Set("userID", claims["user_id"])
		c.Set("role", role)
		c.Set("claims", claims)
		c.Next()
	}
}

// AuthenticateSystemAdmin 验证系统管理员权限
func AuthenticateSystemAdmin() gin.HandlerFunc {
	return authenticateWithRoles(
		"Insufficient permissions: requires admin role",
		models.RoleAdmin,
	)
}

// AuthenticateITSupport 验证IT支持权限（管理员也可访问）
func AuthenticateITSupport() gin.HandlerFunc {
	return authenticateWithRoles(
		"Insufficient permissions: requires IT support role",
		models.RoleITSupport, models.RoleAdmin,
	)
}

// AuthenticateUser 验证任意已登录用户
func AuthenticateUser() gin.HandlerFunc {
	return authenticateWithRoles(
		"Insufficient permissions: requires valid user role",
		models.RoleEmployee, models.RoleITSupport, models.RoleAdmin,
	)
}
