package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewport-dev/staffing-admin/backend/internal/config"
	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
	"github.com/crewport-dev/staffing-admin/backend/internal/handler"
	"github.com/crewport-dev/staffing-admin/backend/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger の作成
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 設定の読み込み
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("設定を読み込めません", "error", err)
		return
	}

	/**********************************************
	 * データベースへの接続
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("データベース接続プールを作成できません", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open は接続プールを作るだけで実際には接続しないので、明示的に ping する
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("データベースに接続できません", "error", err)
		return
	}

	/**********************************************
	 * repository の作成
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 初期管理者がデータベースに存在することを保証する
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("初期管理者のパスワードハッシュを生成できません", "error", err)
		return
	}
	initialAdmin := &domain.User{
		Username:     cfg.InitialAdmin.Username,
		PasswordHash: string(passwordHash),
		FullName:     cfg.InitialAdmin.FullName,
		Email:        cfg.InitialAdmin.Email,
		Role:         domain.RoleAdmin,
	}
	if err := repo.CreateUser(initialAdmin); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "users_username_key":
				// このエラーは初期管理者が既に存在することを意味するので何もしない
			default:
				logger.Error("初期管理者を作成できません", "error", err)
				return
			}
		default:
			logger.Error("初期管理者を作成できません", "error", err)
			return
		}
	}

	/**********************************************
	 * rabbitmq への接続
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("rabbitmq に接続できません", "error", err)
		return
	}
	defer conn.Close()

	// チャネルを開く
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("チャネルを開けません", "error", err)
		return
	}
	defer ch.Close()

	// キューを宣言する
	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("キューを宣言できません", "error", err)
		return
	}

	/**********************************************
	 * redis への接続
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * handler の作成
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, ch, rdb)
	if err != nil {
		logger.Error("handler を作成できません", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * HTTP サーバーの起動
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("サーバーを起動しています...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("サーバーを起動できません", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("サーバーを停止しています...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("サーバーの停止に失敗しました", slog.String("error", err.Error()))
	}
	logger.Info("サーバーを停止しました")
}
