package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/repository"
	"github.com/shiftwise-dev/shiftwise/backend/internal/roster"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	roster      *roster.Manager
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, manager *roster.Manager, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		roster:      manager,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user with a known company
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // the directory is visible to every employee
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.GetMyNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/monthly/{year}/{month}", h.GetMonthlyStats)
			r.Get("/yearly/{year}", h.GetYearlyStats)
		})

		r.Route("/weeks/{offset}", func(r chi.Router) {
			r.Use(h.weekOffset)
			r.Get("/schedule", h.GetSchedule)
			r.Route("/availability", func(r chi.Router) {
				r.Use(h.preventLeavedEmployee)
				r.Post("/", h.SubmitAvailability)
				r.Get("/", h.GetMyAvailability)
				r.Patch("/notes", h.UpdateMyNotes)
			})
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Post("/toggle", h.ToggleCell)
				r.Patch("/staffing", h.SetSlotTarget)
				r.Patch("/targets/{userID}", h.SetWeeklyShiftTarget)
				r.Patch("/edit-status", h.SetEditStatus)
				r.Post("/publish", h.PublishSchedule)
				r.Post("/unpublish", h.UnpublishSchedule)
			})
			r.Route("/transfers", func(r chi.Router) {
				r.Use(h.preventLeavedEmployee)
				r.Post("/offer", h.OfferShift)
				r.Post("/swap", h.ProposeSwap)
			})
		})

		r.Route("/transfers/{id}", func(r chi.Router) {
			r.Use(h.preventLeavedEmployee)
			r.Post("/accept", h.AcceptOffer)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/approve", h.ApproveTransfer)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/decline", h.DeclineTransfer)
		})
	})
}
