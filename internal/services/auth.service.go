package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// AuthService manages JWT token generation and validation for the API and
// WebSocket surfaces.
type AuthService struct {
	secretKey   string
	tokenExpiry time.Duration
}

// CustomClaims is the JWT claims structure for consumer tokens.
type CustomClaims struct {
	NodeName string `json:"node_name"`
	jwt.RegisteredClaims
}

var authService *AuthService

// InitAuthService initializes the authentication service. With an empty
// secretKey a key is loaded from (or generated and persisted to) a local
// key file, so tokens survive agent restarts.
func InitAuthService(log *logrus.Logger, secretKey string, tokenExpiry time.Duration) *AuthService {
	if secretKey == "" {
		secretKey = loadOrCreateSecretKey(log)
	}
	secretKey = strings.TrimSpace(secretKey)

	// HMAC-SHA256 wants at least 32 bytes of key material.
	if len(secretKey) < 32 {
		padding := make([]byte, 32-len(secretKey))
		_, _ = rand.Read(padding)
		secretKey += hex.EncodeToString(padding)
		log.Warnf("secret key shorter than 32 bytes, padded to %d", len(secretKey))
	}

	if tokenExpiry == 0 {
		tokenExpiry = 90 * 24 * time.Hour
	}

	authService = &AuthService{
		secretKey:   secretKey,
		tokenExpiry: tokenExpiry,
	}
	return authService
}

func loadOrCreateSecretKey(log *logrus.Logger) string {
	homeDir, _ := os.UserHomeDir()
	keyFile := filepath.Join(homeDir, ".diskwarden-secret-key")
	if homeDir == "" {
		keyFile = filepath.Join(os.TempDir(), ".diskwarden-secret-key")
	}

	if data, err := os.ReadFile(keyFile); err == nil && len(data) > 0 {
		log.Infof("loaded persisted secret key from %s", keyFile)
		return strings.TrimSpace(string(data))
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "diskwarden-agent"
	}
	randomBytes := make([]byte, 16)
	var key string
	if _, err := rand.Read(randomBytes); err != nil {
		key = fmt.Sprintf("diskwarden-%s-%d", hostname, time.Now().UnixNano())
		log.Warn("random generation failed, using fallback key")
	} else {
		key = fmt.Sprintf("diskwarden-%s-%s", hostname, hex.EncodeToString(randomBytes))
	}

	if err := os.WriteFile(keyFile, []byte(key), 0600); err != nil {
		log.Warnf("could not persist secret key to %s: %v", keyFile, err)
	} else {
		log.Infof("generated and persisted secret key to %s", keyFile)
	}
	return key
}

// GenerateToken creates a new JWT token for the named consumer.
func GenerateToken(nodeName string) (string, error) {
	if authService == nil {
		return "", fmt.Errorf("auth service not initialized")
	}

	now := time.Now()
	claims := CustomClaims{
		NodeName: nodeName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(authService.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "diskwarden",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authService.secretKey))
}

// ValidateToken verifies and parses a JWT token.
func ValidateToken(tokenString string) (*CustomClaims, error) {
	if authService == nil {
		return nil, fmt.Errorf("auth service not initialized")
	}

	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(authService.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
