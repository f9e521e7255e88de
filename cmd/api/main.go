package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-auth-api/internal/application/accesstoken"
	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/application/cache"
	"github.com/go-auth-api/internal/application/category"
	"github.com/go-auth-api/internal/application/credential"
	"github.com/go-auth-api/internal/application/otp"
	"github.com/go-auth-api/internal/application/registration"
	"github.com/go-auth-api/internal/application/session"
	"github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/infrastructure/memory"
	"github.com/go-auth-api/internal/infrastructure/postgres"
	rediscache "github.com/go-auth-api/internal/infrastructure/redis"
	s3infra "github.com/go-auth-api/internal/infrastructure/s3"
	"github.com/go-auth-api/internal/infrastructure/smtp"
	"github.com/go-auth-api/internal/infrastructure/sns"
	"github.com/go-auth-api/internal/observability"
	"github.com/go-auth-api/internal/pkg/password"
	transporthttp "github.com/go-auth-api/internal/transport/http"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatalf("postgres bootstrap: %v", err)
	}

	store, closeStore, err := newCacheStore(ctx, cfg)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	defer closeStore()

	accessSigner, err := jwtinfra.NewProvider(cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}
	registrationSigner, err := jwtinfra.NewProvider(cfg.Auth.RegistrationTokenSecret)
	if err != nil {
		log.Fatalf("registration jwt: %v", err)
	}

	deliverer, err := newDeliverer(ctx, cfg)
	if err != nil {
		log.Fatalf("otp delivery: %v", err)
	}

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	pictures := s3infra.NewStore(s3Client, cfg.S3BucketName)

	observability.RegisterMetrics(prometheus.DefaultRegisterer)

	hasher := password.NewHasher(cfg.BcryptCost)
	userRepo := postgres.NewUserRepo(pool)
	sessions := session.NewService(store, cfg.Auth.SessionExpiresIn)
	accessTokens := accesstoken.NewService(accessSigner, cfg.Auth.JWTExpiresIn)

	authSvc := auth.NewService(
		otp.NewService(store, cfg.Auth.OTPExpiresIn),
		registration.NewService(store, registrationSigner, cfg.Auth.RegistrationSessionExpiresIn, cfg.Auth.RegistrationTokenExpiresIn),
		accessTokens,
		sessions,
		credential.NewService(userRepo, hasher),
		deliverer,
	)

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Auth:         authSvc,
		AccessTokens: accessTokens,
		Users:        user.NewService(userRepo, sessions, hasher, pictures),
		Categories:   category.NewService(postgres.NewCategoryRepo(pool)),
	})
	defer router.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newCacheStore selects the key-value backend for OTPs, registration
// records and login sessions.
func newCacheStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	switch cfg.CacheDriver {
	case "redis":
		client, err := rediscache.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return rediscache.NewCache(client), func() { _ = client.Close() }, nil
	case "dynamodb":
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		return dynamo.NewCache(client, cfg.DynamoTables.Cache), func() {}, nil
	case "memory":
		slog.Warn("using in-process cache; sessions are lost on restart")
		c := memory.NewCache(time.Minute)
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}
}

func newDeliverer(ctx context.Context, cfg *config.Config) (auth.Deliverer, error) {
	switch cfg.OTPDelivery {
	case "log":
		return auth.LogDeliverer{}, nil
	case "smtp":
		return smtp.NewOTPDeliverer(smtp.NewMailer(cfg)), nil
	case "sns":
		if cfg.OTPSNSTopicARN == "" {
			return nil, fmt.Errorf("OTP_SNS_TOPIC_ARN is required for sns delivery")
		}
		client, err := sns.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return sns.NewOTPDeliverer(client, cfg.OTPSNSTopicARN), nil
	default:
		return nil, fmt.Errorf("unknown OTP_DELIVERY %q", cfg.OTPDelivery)
	}
}
