package utils

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

// 姓・名とローマ字表記を対で持つ。ユーザー名はローマ字から作る。
var commonSurnames = []struct {
	Kanji  string
	Romaji string
}{
	{"佐藤", "sato"}, {"鈴木", "suzuki"}, {"高橋", "takahashi"}, {"田中", "tanaka"},
	{"伊藤", "ito"}, {"渡辺", "watanabe"}, {"山本", "yamamoto"}, {"中村", "nakamura"},
	{"小林", "kobayashi"}, {"加藤", "kato"}, {"吉田", "yoshida"}, {"山田", "yamada"},
	{"佐々木", "sasaki"}, {"松本", "matsumoto"}, {"井上", "inoue"}, {"木村", "kimura"},
}

var commonGivenNames = []struct {
	Kanji  string
	Romaji string
}{
	{"翔太", "shota"}, {"大輝", "daiki"}, {"健太", "kenta"}, {"拓也", "takuya"},
	{"美咲", "misaki"}, {"葵", "aoi"}, {"陽菜", "hina"}, {"さくら", "sakura"},
	{"蓮", "ren"}, {"湊", "minato"}, {"結衣", "yui"}, {"凛", "rin"},
	{"優子", "yuko"}, {"直樹", "naoki"}, {"彩花", "ayaka"}, {"隼人", "hayato"},
}

// GenerateRandomJapaneseName は姓名の漢字表記とローマ字表記を返す。
func GenerateRandomJapaneseName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	given := commonGivenNames[rand.Intn(len(commonGivenNames))]
	return surname.Kanji + given.Kanji, surname.Romaji + given.Romaji
}

var roles = []domain.Role{
	domain.RoleGeneral,
	domain.RoleManager,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var staffTypes = []domain.RoleType{
	domain.RoleTypeCloser,
	domain.RoleTypeGirl,
}

func GenerateRandomStaffType() domain.RoleType {
	return staffTypes[rand.Intn(len(staffTypes))]
}

var digits = "0123456789"

// GenerateUsername はローマ字表記の名前の後ろに数桁の数字を付けてユーザー名にする。
func GenerateUsername(romaji string) string {
	username := romaji

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName, romaji := GenerateRandomJapaneseName()
	username := GenerateUsername(romaji)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomStaff(emailDomainName string) *domain.Staff {
	name, romaji := GenerateRandomJapaneseName()

	return &domain.Staff{
		Name:  name,
		Type:  GenerateRandomStaffType(),
		Email: GenerateUsername(romaji) + "@" + emailDomainName,
	}
}

var agencyNames = []string{
	"ナイトワークス", "クルーポート", "アスタリスク企画", "イベントリンク",
	"ステージプロ", "フロントライン", "ムーンリット", "グランドステージ",
}

var locationNames = []string{
	"六本木", "歌舞伎町", "渋谷", "銀座", "中洲", "すすきの", "栄", "北新地",
}

// GenerateRandomVenue は求人枠付きの店舗をランダムに生成する。
func GenerateRandomVenue(monthStart time.Time) *domain.Venue {
	venue := &domain.Venue{
		Agency:          agencyNames[rand.Intn(len(agencyNames))] + GenerateRandomID(0, 2),
		Location:        locationNames[rand.Intn(len(locationNames))],
		IsOutsideVenue:  rand.Intn(4) == 0,
		HasBusinessTrip: rand.Intn(6) == 0,
	}

	// 半数ほどの店舗には月内の営業期間を付ける
	if rand.Intn(2) == 0 {
		from := monthStart.AddDate(0, 0, rand.Intn(10))
		until := from.AddDate(0, 0, rand.Intn(14)+7)
		venue.OpenFrom = &from
		venue.OpenUntil = &until
	}

	orderTypes := []domain.RoleType{domain.RoleTypeCloser, domain.RoleTypeGirl, domain.RoleTypeFreeEntry}
	ordersNum := rand.Intn(3) + 1
	venue.Orders = make([]domain.Order, ordersNum)
	for i := range venue.Orders {
		order := domain.Order{
			Type: orderTypes[rand.Intn(len(orderTypes))],
		}
		// フリー入場枠は人数未指定のままにする
		if order.Type != domain.RoleTypeFreeEntry {
			count := int32(rand.Intn(4) + 1)
			order.Count = &count
		}
		venue.Orders[i] = order
	}

	return venue
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}
