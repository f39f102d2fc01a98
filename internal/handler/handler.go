package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/crewport-dev/staffing-admin/backend/internal/config"
	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
	"github.com/crewport-dev/staffing-admin/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	ja := ja.New()
	uni := ut.New(ja, ja)
	trans, _ := uni.GetTranslator("ja")
	if err := ja_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 認証まわり
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下の API はログイン後にしか呼べない
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/staff", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Post("/", h.CreateStaff)
			r.Get("/", h.GetAllStaff)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffInfo)
				r.Get("/", h.GetStaff)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Patch("/", h.UpdateStaff)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Delete("/", h.DeleteStaff)
			})
		})

		r.Route("/venues", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Post("/", h.CreateVenue)
			r.Get("/", h.GetAllVenues)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.venueInfo)
				r.Get("/", h.GetVenue)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Patch("/", h.UpdateVenue)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Delete("/", h.DeleteVenue)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Post("/orders", h.AddOrder)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Delete("/orders/{orderID}", h.DeleteOrder)
			})
		})

		// シフト表示用のカレンダー
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/weeks", h.GetMonthWeeks)
			r.Get("/week-options", h.GetWeekOptions)
		})

		// シフト表の参照と編集
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/venues", h.GetScheduleVenues)
			r.Get("/slots", h.GetSlotInfo)
			r.Post("/assignments", h.CreateAssignment)
			r.Delete("/assignments", h.DeleteAssignment)
		})
	})
}
