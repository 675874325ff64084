package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	// StoreCookie keeps the whole session in the cookie.
	StoreCookie = "cookie"
	// StoreMemory keeps sessions in process memory, keyed by a cookie id.
	StoreMemory = "memory"

	defaultSecret = "development-secret-change-me-please-0123456789"
	defaultMaxAge = 7 * 24 * 60 * 60
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Session SessionConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Session: session}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// SessionConfig 描述会话 cookie 与存储方式。
type SessionConfig struct {
	Name          string
	Store         string
	Secret        []byte
	EncryptionKey []byte
	MaxAge        int
	Secure        bool
}

func loadSessionConfig() (SessionConfig, error) {
	store := strings.ToLower(getEnvOrDefault("SESSION_STORE", StoreCookie))
	if store != StoreCookie && store != StoreMemory {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_STORE value %q: want %s or %s", store, StoreCookie, StoreMemory)
	}

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		log.Println("warning: SESSION_SECRET not set, using development secret")
		secret = defaultSecret
	}

	var encryptionKey []byte
	if key := strings.TrimSpace(os.Getenv("SESSION_ENCRYPTION_KEY")); key != "" {
		switch len(key) {
		case 16, 24, 32:
			encryptionKey = []byte(key)
		default:
			return SessionConfig{}, fmt.Errorf("invalid SESSION_ENCRYPTION_KEY length %d: want 16, 24 or 32 bytes", len(key))
		}
	}

	maxAge := defaultMaxAge
	if override, err := parseOptionalIntEnv("SESSION_MAX_AGE"); err != nil {
		return SessionConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return SessionConfig{}, fmt.Errorf("invalid SESSION_MAX_AGE value %d: must not be negative", *override)
		}
		maxAge = *override
	}

	secure, err := parseBoolEnv("SESSION_SECURE", false)
	if err != nil {
		return SessionConfig{}, err
	}

	name := getEnvOrDefault("SESSION_NAME", "todos_session")
	if !validCookieName(name) {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_NAME value %q: must be a cookie token", name)
	}

	return SessionConfig{
		Name:          name,
		Store:         store,
		Secret:        []byte(secret),
		EncryptionKey: encryptionKey,
		MaxAge:        maxAge,
		Secure:        secure,
	}, nil
}

// validCookieName reports whether name is an RFC 7230 token, the charset net/http accepts
// for cookie names.
func validCookieName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("!#$%&'*+-.^_`|~", r):
		default:
			return false
		}
	}
	return true
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
