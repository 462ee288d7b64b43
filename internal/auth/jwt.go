package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CapabilityManage — способность управлять расписаниями: генерация,
// регенерация, публикация, завершение, удаление, правка состава.
const CapabilityManage = "roster:manage"

var ErrInvalidToken = errors.New("invalid token")

// Claims — данные доступа, приходящие от подсистемы идентификации.
type Claims struct {
	Capabilities []string `json:"caps"`
	jwt.RegisteredClaims
}

// HasCapability проверяет наличие способности в токене.
func (c *Claims) HasCapability(capability string) bool {
	for _, cap := range c.Capabilities {
		if cap == capability {
			return true
		}
	}
	return false
}

// JWTManager инкапсулирует генерацию и проверку токенов доступа.
type JWTManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewJWTManager создает менеджер с секретом и временем жизни токена.
func NewJWTManager(secret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL}
}

// GenerateAccessToken выпускает HS256-токен со стандартными claims.
func (m *JWTManager) GenerateAccessToken(subject string, capabilities []string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAndValidate проверяет подпись и срок действия токена.
func (m *JWTManager) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
