package services

import (
	"errors"
	"fmt"
	"time"

	"desk-management-service/internal/domain/models"
	"desk-management-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(userID uint, role string, fullName string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(email, password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "desk-management-service",
		DB:        db,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(userID uint, role string, fullName string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		UserID:   userID,
		Role:     role,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		jwtClaims := &JWTClaims{}

		// 提取用户ID
		if userID, ok := claims["user_id"].(float64); ok {
			jwtClaims.UserID = uint(userID)
		}

		// 提取角色
		if role, ok := claims["role"].(string); ok {
			jwtClaims.Role = role
		}

		// 提取姓名（如果存在）
		if fullName, ok := claims["full_name"].(string); ok {
			jwtClaims.FullName = fullName
		}

		if issuer, ok := claims["iss"].(string); ok {
			jwtClaims.Issuer = issuer
		}

		return jwtClaims, nil
	}

	return nil, errors.New("invalid token claims")
}

// Login 处理用户登录请求
func (s *JWTService) Login(email, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !models.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrUserPasswordIncorrect
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := s.GenerateToken(user.ID, user.Role, user.FullName)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		UserID:   user.ID,
		Role:     user.Role,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}
