package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/calendar"
	"github.com/crewport-dev/staffing-admin/backend/internal/repository"
	"github.com/crewport-dev/staffing-admin/backend/internal/schedule"
	"github.com/crewport-dev/staffing-admin/backend/internal/utils"
)

// SeedUsers は管理画面のユーザーをランダムに作る。
func SeedUsers(r *repository.Repository, n int, password string, emailDomain string) {
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("ユーザーの生成に失敗しました", "error", err)
			return
		}
		if err := r.CreateUser(user); err != nil {
			// ユーザー名が衝突することがあるので、失敗はログに残して続行する
			slog.Warn("ユーザーの挿入に失敗しました", "username", user.Username, "error", err)
			continue
		}
		slog.Info("ユーザーを挿入しました", "username", user.Username)
	}
}

// SeedStaff は派遣スタッフをランダムに作る。
func SeedStaff(r *repository.Repository, n int, emailDomain string) {
	for i := 0; i < n; i++ {
		staff := utils.GenerateRandomStaff(emailDomain)
		if err := r.CreateStaff(staff); err != nil {
			slog.Warn("スタッフの挿入に失敗しました", "name", staff.Name, "error", err)
			continue
		}
		slog.Info("スタッフを挿入しました", "name", staff.Name, "type", staff.Type)
	}
}

// SeedVenues は求人枠付きの店舗をランダムに作る。
func SeedVenues(r *repository.Repository, n int, year int, month time.Month) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		venue := utils.GenerateRandomVenue(monthStart)
		if err := r.CreateVenue(venue); err != nil {
			slog.Warn("店舗の挿入に失敗しました", "agency", venue.Agency, "error", err)
			continue
		}
		slog.Info("店舗を挿入しました", "agency", venue.Agency, "orders", len(venue.Orders))
	}
}

// SeedAssignments は指定月の各日についてランダムにシフトを割り当てる。
// 割当の不変条件（職種・重複・人数）の判定はボードに任せ、
// 通らなかった候補は単に飛ばす。
func SeedAssignments(r *repository.Repository, year int, month time.Month) {
	venues, err := r.GetAllVenues()
	if err != nil {
		slog.Error("店舗一覧の取得に失敗しました", "error", err)
		return
	}
	staffList, err := r.GetAllStaff()
	if err != nil {
		slog.Error("スタッフ一覧の取得に失敗しました", "error", err)
		return
	}
	if len(venues) == 0 || len(staffList) == 0 {
		slog.Error("店舗とスタッフを先に投入してください")
		return
	}

	weeks := calendar.MonthWeeks(year, month)

	board := schedule.NewBoard()
	for _, venue := range venues {
		if err := board.AddVenue(venue); err != nil {
			slog.Error("ボードの構築に失敗しました", "error", err)
			return
		}
	}
	for _, staff := range staffList {
		if err := board.AddStaff(staff); err != nil {
			slog.Error("ボードの構築に失敗しました", "error", err)
			return
		}
	}

	inserted := 0
	for _, week := range weeks {
		for _, day := range week.Days() {
			for _, venue := range board.VenuesForDate(day.Date) {
				for _, order := range venue.Orders {
					// 枠ごとに数人だけ割当を試す
					for i := 0; i < rand.Intn(3)+1; i++ {
						staff := staffList[rand.Intn(len(staffList))]
						assignment, err := board.Assign(venue.ID, order.ID, day.Date, staff.ID)
						if err != nil {
							continue
						}
						if err := r.CreateAssignment(assignment); err != nil {
							slog.Warn("割当の挿入に失敗しました", "error", err)
							continue
						}
						inserted++
					}
				}
			}
		}
	}

	slog.Info("割当を挿入しました", "count", inserted, "year", year, "month", int(month))
}
