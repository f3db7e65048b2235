package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"

	cartdomain "github.com/machbazar/storefront/internal/cart/domain"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/internal/order/usecase/command"
	"github.com/machbazar/storefront/internal/order/usecase/query"
	"github.com/machbazar/storefront/pkg/auth"
	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
)

// OrderHandler serves checkout, order lookup and payment verification
type OrderHandler struct {
	placeOrderHandler    *command.PlaceOrderHandler
	verifyPaymentHandler *command.VerifyPaymentHandler
	expireOrdersHandler  *command.ExpireOrdersHandler
	getOrderHandler      *query.GetOrderHandler
	getDetailHandler     *query.GetOrderDetailHandler
	listOrdersHandler    *query.ListOrdersHandler
	getStatsHandler      *query.GetStatsHandler

	tokens        *auth.TokenService
	metrics       *httpx.Metrics
	ordersPlaced  *prometheus.CounterVec
	pendingOrders prometheus.Gauge
}

// NewOrderHandler creates a new order handler and registers its metrics
func NewOrderHandler(
	placeOrderHandler *command.PlaceOrderHandler,
	verifyPaymentHandler *command.VerifyPaymentHandler,
	expireOrdersHandler *command.ExpireOrdersHandler,
	getOrderHandler *query.GetOrderHandler,
	getDetailHandler *query.GetOrderDetailHandler,
	listOrdersHandler *query.ListOrdersHandler,
	getStatsHandler *query.GetStatsHandler,
	tokens *auth.TokenService,
	reg prometheus.Registerer,
) *OrderHandler {
	ordersPlaced := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders placed, by payment method",
		},
		[]string{"payment_method"},
	)
	pendingOrders := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_pending_verification",
			Help: "Orders waiting for payment verification",
		},
	)
	reg.MustRegister(ordersPlaced, pendingOrders)

	return &OrderHandler{
		placeOrderHandler:    placeOrderHandler,
		verifyPaymentHandler: verifyPaymentHandler,
		expireOrdersHandler:  expireOrdersHandler,
		getOrderHandler:      getOrderHandler,
		getDetailHandler:     getDetailHandler,
		listOrdersHandler:    listOrdersHandler,
		getStatsHandler:      getStatsHandler,
		tokens:               tokens,
		metrics:              httpx.NewMetrics(reg, "order"),
		ordersPlaced:         ordersPlaced,
		pendingOrders:        pendingOrders,
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics.Wrap
	admin := h.tokens.AdminMiddleware

	// Public routes
	router.HandleFunc("/api/checkout/{session}", m("/api/checkout/{session}", h.PlaceOrder)).Methods("POST")
	router.HandleFunc("/api/orders/{orderId}", m("/api/orders/{orderId}", h.GetOrder)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/admin/orders", m("/api/admin/orders", admin(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/admin/orders/stats", m("/api/admin/orders/stats", admin(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/admin/orders/expire", m("/api/admin/orders/expire", admin(h.ExpireOrders))).Methods("POST")
	router.HandleFunc("/api/admin/orders/{orderId}", m("/api/admin/orders/{orderId}", admin(h.GetOrderDetail))).Methods("GET")
	router.HandleFunc("/api/admin/orders/{orderId}/verify", m("/api/admin/orders/{orderId}/verify", admin(h.VerifyPayment))).Methods("PATCH")
}

type checkoutRequest struct {
	Customer      domain.Customer `json:"customer"`
	CustomerPhone string          `json:"customerPhone"`
	PaymentMethod string          `json:"paymentMethod"`
	TransactionID string          `json:"transactionId"`
}

// PlaceOrder handles POST /api/checkout/{session}
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.placeOrderHandler.Handle(r.Context(), command.PlaceOrderCommand{
		SessionID:     mux.Vars(r)["session"],
		Customer:      req.Customer,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to place order")
		return
	}
	h.ordersPlaced.WithLabelValues(order.PaymentMethod).Inc()
	h.updatePendingMetric(r)

	httpx.RespondJSON(w, http.StatusCreated, httpx.Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// GetOrder handles GET /api/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.getOrderHandler.Handle(r.Context(), query.GetOrderQuery{OrderID: mux.Vars(r)["orderId"]})
	if err != nil {
		h.respondError(w, r, err, "Failed to get order")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    view,
	})
}

// GetOrderDetail handles GET /api/admin/orders/{orderId}
func (h *OrderHandler) GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	order, err := h.getDetailHandler.Handle(r.Context(), query.GetOrderQuery{OrderID: mux.Vars(r)["orderId"]})
	if err != nil {
		h.respondError(w, r, err, "Failed to get order")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    order,
	})
}

// ListOrders handles GET /api/admin/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.listOrdersHandler.Handle(r.Context(), query.ListOrdersQuery{
		Status: q.Get("status"),
		Page:   cast.ToInt(q.Get("page")),
		Limit:  cast.ToInt(q.Get("limit")),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to list orders")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    result,
	})
}

// VerifyPayment handles PATCH /api/admin/orders/{orderId}/verify
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approved *bool  `json:"approved"`
		Note     string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Approved == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username, _ := r.Context().Value(auth.UsernameKey).(string)
	order, err := h.verifyPaymentHandler.Handle(r.Context(), command.VerifyPaymentCommand{
		OrderID:    mux.Vars(r)["orderId"],
		Approved:   *req.Approved,
		Note:       req.Note,
		VerifiedBy: username,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to verify payment")
		return
	}
	h.updatePendingMetric(r)

	message := "Payment rejected"
	if *req.Approved {
		message = "Payment verified"
	}
	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: message,
		Data:    order,
	})
}

// ExpireOrders handles POST /api/admin/orders/expire
func (h *OrderHandler) ExpireOrders(w http.ResponseWriter, r *http.Request) {
	n, err := h.expireOrdersHandler.Handle(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to expire orders")
		return
	}
	h.updatePendingMetric(r)

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    map[string]int64{"expired": n},
	})
}

// GetStats handles GET /api/admin/orders/stats
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.getStatsHandler.Handle(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to get order stats")
		return
	}
	h.pendingOrders.Set(float64(stats.ByStatus[domain.StatusPendingVerification]))

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    stats,
	})
}

func (h *OrderHandler) respondError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errs, ok := catalogdomain.AsValidation(err); ok {
		httpx.RespondFieldErrors(w, "Validation failed", errs.Fields())
		return
	}

	switch {
	case errors.Is(err, cartdomain.ErrInvalidSession):
		httpx.RespondError(w, http.StatusBadRequest, "Invalid cart session")
	case errors.Is(err, domain.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		httpx.RespondError(w, http.StatusConflict, "Order is no longer awaiting verification")
	default:
		logger.Error(r.Context()).Err(err).Msg(message)
		httpx.RespondError(w, http.StatusInternalServerError, message)
	}
}

// updatePendingMetric refreshes the pending orders gauge
func (h *OrderHandler) updatePendingMetric(r *http.Request) {
	stats, err := h.getStatsHandler.Handle(r.Context())
	if err == nil {
		h.pendingOrders.Set(float64(stats.ByStatus[domain.StatusPendingVerification]))
	}
}
