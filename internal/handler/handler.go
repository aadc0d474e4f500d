package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/repository"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/snapshot"
)

const (
	EmailQueue    = "email_queue"
	MutationQueue = "reservation_queue"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	cache       *snapshot.Cache
	translator  ut.Translator
	mqChannel   *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, cache *snapshot.Cache, mqCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		cache:       cache,
		translator:  trans,
		mqChannel:   mqCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 值班表需要展示所有人的姓名，因此不限制角色
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/capacities", func(r chi.Router) {
			r.Get("/", h.GetCapacityOverrides)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Put("/", h.SaveCapacityOverrides)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(h.myInfo)
				r.Use(h.preventInactiveAssistant)
				r.Post("/", h.SubmitReservations)
				r.Delete("/", h.DeleteReservations)
			})
			r.Get("/", h.GetReservations)
			r.Get("/counts", h.GetReservationCounts)
		})

		r.Get("/calendar", h.GetCalendar)
		r.Post("/snapshot/reload", h.ReloadSnapshot)
	})
}
