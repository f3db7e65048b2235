package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/machbazar/storefront/internal/admin/usecase/command"
	"github.com/machbazar/storefront/internal/admin/usecase/query"
	"github.com/machbazar/storefront/pkg/auth"
	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
)

// AdminHandler serves admin login and the dashboard
type AdminHandler struct {
	loginHandler     *command.LoginHandler
	dashboardHandler *query.GetDashboardHandler

	tokens        *auth.TokenService
	metrics       *httpx.Metrics
	loginAttempts *prometheus.CounterVec
}

// NewAdminHandler creates a new admin handler and registers its metrics
func NewAdminHandler(
	loginHandler *command.LoginHandler,
	dashboardHandler *query.GetDashboardHandler,
	tokens *auth.TokenService,
	reg prometheus.Registerer,
) *AdminHandler {
	loginAttempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Admin login attempts by result",
		},
		[]string{"result"},
	)
	reg.MustRegister(loginAttempts)

	return &AdminHandler{
		loginHandler:     loginHandler,
		dashboardHandler: dashboardHandler,
		tokens:           tokens,
		metrics:          httpx.NewMetrics(reg, "admin"),
		loginAttempts:    loginAttempts,
	}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics.Wrap

	router.HandleFunc("/api/admin/login", m("/api/admin/login", h.Login)).Methods("POST")
	router.HandleFunc("/api/admin/dashboard", m("/api/admin/dashboard", h.tokens.AdminMiddleware(h.Dashboard))).Methods("GET")
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidCredentials) {
			h.loginAttempts.WithLabelValues("rejected").Inc()
			httpx.RespondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Admin login failed")
		httpx.RespondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	h.loginAttempts.WithLabelValues("accepted").Inc()

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load dashboard")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    dashboard,
	})
}
