package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/streamverse/vidtube/internal/auth"
	"github.com/streamverse/vidtube/internal/config"
	"github.com/streamverse/vidtube/internal/content"
	"github.com/streamverse/vidtube/internal/limiter"
	lg "github.com/streamverse/vidtube/internal/log"
	"github.com/streamverse/vidtube/internal/migrate"
	pgrepo "github.com/streamverse/vidtube/internal/repo/postgres"
	"github.com/streamverse/vidtube/internal/token"
	transport "github.com/streamverse/vidtube/internal/transport/http"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	validate := validator.New()
	_ = validate.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		var count int
		var hasUpper, hasDigit bool
		for _, r := range pwd {
			count++
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsDigit(r) {
				hasDigit = true
			}
		}
		return count >= 8 && hasUpper && hasDigit
	})

	tokenUtil, err := token.NewUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init token util", zap.Error(err))
	}

	userRepo := pgrepo.NewUserRepo(db)
	loginLim := limiter.NewRedisLoginLimiter(redisCli, cfg.LoginMaxAttempts, cfg.LoginCooldown)
	authSvc := auth.NewService(userRepo, tokenUtil, loginLim, cfg, validate)

	svcs := content.NewServices(
		pgrepo.NewVideoRepo(db),
		pgrepo.NewCommentRepo(db),
		pgrepo.NewTweetRepo(db),
		pgrepo.NewPlaylistRepo(db),
		pgrepo.NewLikeRepo(db),
		validate,
	)

	router := transport.NewRouter(cfg, zapLog, authSvc, svcs)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	rootCtx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
