package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultJWTSecret  string = "glintz-dev-secret"
	defaultExpiration        = time.Hour * 24
)

// UserClaims 定义了 Token 中需要包含的业务信息
type UserClaims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
