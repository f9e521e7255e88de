package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	AllowedOrigins []string // CORS allowed origins
	TrustedProxy   bool     // honour X-Forwarded-For / X-Real-IP from a fronting proxy

	DatabaseURL string

	CacheDriver   string // "redis" | "dynamodb" | "memory"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	Auth Auth

	OTPDelivery    string // "log" | "smtp" | "sns"
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SNSRegion      string
	OTPSNSTopicARN string

	BcryptCost int
}

// Auth holds the token secrets and lifetimes of the authentication flows.
// Every field is required at startup.
type Auth struct {
	JWTSecret                    string
	JWTExpiresIn                 time.Duration
	OTPExpiresIn                 time.Duration
	RegistrationSessionExpiresIn time.Duration
	RegistrationTokenSecret      string
	RegistrationTokenExpiresIn   time.Duration
	SessionExpiresIn             time.Duration
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Cache string
}

// Load reads all configuration from environment variables. Missing required
// keys are reported together.
func Load() (*Config, error) {
	req := &required{}
	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustedProxy:   getEnvBool("TRUSTED_PROXY", false),
		DatabaseURL:    req.str("DATABASE_URL"),
		CacheDriver:    getEnv("CACHE_DRIVER", "redis"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Cache: getEnv("DYNAMO_TABLE_CACHE", "cache_entries"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "go-auth-api-files"),
		Auth: Auth{
			JWTSecret:                    req.str("JWT_SECRET"),
			JWTExpiresIn:                 req.duration("JWT_EXPIRES_IN"),
			OTPExpiresIn:                 req.duration("OTP_EXPIRES_IN"),
			RegistrationSessionExpiresIn: req.duration("REGISTRATION_SESSION_EXPIRES_IN"),
			RegistrationTokenSecret:      req.str("REGISTRATION_TOKEN_SECRET"),
			RegistrationTokenExpiresIn:   req.duration("REGISTRATION_TOKEN_EXPIRES_IN"),
			SessionExpiresIn:             req.duration("SESSION_EXPIRES_IN"),
		},
		OTPDelivery:    getEnv("OTP_DELIVERY", "log"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		OTPSNSTopicARN: getEnv("OTP_SNS_TOPIC_ARN", ""),
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
	}
	if err := req.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// required accumulates problems with mandatory keys.
type required struct {
	problems []string
}

func (r *required) str(key string) string {
	v := os.Getenv(key)
	if v == "" {
		r.problems = append(r.problems, key+" is not set")
	}
	return v
}

func (r *required) duration(key string) time.Duration {
	v := r.str(key)
	if v == "" {
		return 0
	}
	d, err := ParseDuration(v)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s: %v", key, err))
	}
	return d
}

func (r *required) err() error {
	if len(r.problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(r.problems, "; "))
}

// ParseDuration accepts whole seconds ("300") or a Go duration ("5m").
func ParseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive, got %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	if d < time.Second {
		return 0, fmt.Errorf("duration must be at least one second, got %s", d)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
