package service

import (
	"errors"
	"strings"
	"time"

	"github.com/affiliate-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid token 无法解析或签名错误
var ErrTokenInvalid = errors.New("无效的 token")

// JWTClaims 管理员 JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// SignAdminToken 签发管理员 Token（种子数据与测试使用，线上由认证服务签发）
func SignAdminToken(secret string, admin *models.Admin, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return signClaims(secret, claims, expiresAt)
}

// SignUserToken 签发用户 Token
func SignUserToken(secret string, user *models.User, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return signClaims(secret, claims, expiresAt)
}

func signClaims(secret string, claims jwt.Claims, expiresAt time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAdminToken 解析管理员 Token
func ParseAdminToken(secret, tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	if err := parseClaims(secret, tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseUserToken 解析用户 Token
func ParseUserToken(secret, tokenString string) (*UserJWTClaims, error) {
	claims := &UserJWTClaims{}
	if err := parseClaims(secret, tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseClaims(secret, tokenString string, claims jwt.Claims) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
