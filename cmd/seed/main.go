package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/config"
	"github.com/crewport-dev/staffing-admin/backend/internal/repository"
	"github.com/crewport-dev/staffing-admin/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var year int
	var month int

	flag.IntVar(&op, "op", 0, "実行する操作 (1: ランダムなユーザーを挿入, 2: ランダムなスタッフを挿入, 3: ランダムな店舗を挿入, 4: 指定月の割当を挿入)")
	flag.IntVar(&n, "n", 5, "挿入するレコード数")
	flag.IntVar(&year, "year", time.Now().Year(), "割当・店舗営業期間の対象年")
	flag.IntVar(&month, "month", int(time.Now().Month()), "割当・店舗営業期間の対象月")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 設定の読み込み
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("設定を読み込めません", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// データベース接続プールの作成
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("データベース接続プールを作成できません", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("データベースに接続できません", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, dbpool)

	if month < 1 || month > 12 {
		logger.Error("月の指定が不正です", "month", month)
		os.Exit(1)
	}

	switch op {
	case 1:
		seed.SeedUsers(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
	case 2:
		seed.SeedStaff(repo, n, cfg.Email.UserDomain)
	case 3:
		seed.SeedVenues(repo, n, year, time.Month(month))
	case 4:
		seed.SeedAssignments(repo, year, time.Month(month))
	default:
		logger.Error("不明な操作です", "op", op)
		os.Exit(1)
	}
}
