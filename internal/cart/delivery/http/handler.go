package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	"github.com/machbazar/storefront/internal/cart/usecase/command"
	"github.com/machbazar/storefront/internal/cart/usecase/query"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/customize"
	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
)

// CartHandler serves the session cart
type CartHandler struct {
	addItemHandler    *command.AddItemHandler
	updateItemHandler *command.UpdateItemHandler
	removeItemHandler *command.RemoveItemHandler
	clearCartHandler  *command.ClearCartHandler
	addPackageHandler *command.AddPackageHandler
	getCartHandler    *query.GetCartHandler

	metrics  *httpx.Metrics
	cartAdds *prometheus.CounterVec
}

// NewCartHandler creates a new cart handler and registers its metrics
func NewCartHandler(
	addItemHandler *command.AddItemHandler,
	updateItemHandler *command.UpdateItemHandler,
	removeItemHandler *command.RemoveItemHandler,
	clearCartHandler *command.ClearCartHandler,
	addPackageHandler *command.AddPackageHandler,
	getCartHandler *query.GetCartHandler,
	reg prometheus.Registerer,
) *CartHandler {
	cartAdds := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_additions_total",
			Help: "Products and packages added to carts",
		},
		[]string{"kind"},
	)
	reg.MustRegister(cartAdds)

	return &CartHandler{
		addItemHandler:    addItemHandler,
		updateItemHandler: updateItemHandler,
		removeItemHandler: removeItemHandler,
		clearCartHandler:  clearCartHandler,
		addPackageHandler: addPackageHandler,
		getCartHandler:    getCartHandler,
		metrics:           httpx.NewMetrics(reg, "cart"),
		cartAdds:          cartAdds,
	}
}

func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics.Wrap

	router.HandleFunc("/api/cart", m("/api/cart", h.CreateSession)).Methods("POST")
	router.HandleFunc("/api/cart/{session}", m("/api/cart/{session}", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/cart/{session}", m("/api/cart/{session}", h.ClearCart)).Methods("DELETE")
	router.HandleFunc("/api/cart/{session}/items", m("/api/cart/{session}/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart/{session}/items/{productId}", m("/api/cart/{session}/items/{productId}", h.UpdateItem)).Methods("PATCH")
	router.HandleFunc("/api/cart/{session}/items/{productId}", m("/api/cart/{session}/items/{productId}", h.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/api/cart/{session}/packages/{slug}", m("/api/cart/{session}/packages/{slug}", h.AddPackage)).Methods("POST")
}

// CreateSession handles POST /api/cart
func (h *CartHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := store.NewSessionID()
	httpx.RespondJSON(w, http.StatusCreated, httpx.Response{
		Success: true,
		Data:    query.NewCartView(id, domain.NewCart(), lang(r)),
	})
}

// GetCart handles GET /api/cart/{session}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{
		SessionID: mux.Vars(r)["session"],
		Lang:      lang(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    view,
	})
}

// AddItem handles POST /api/cart/{session}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID       string                  `json:"productId"`
		Quantity        float64                 `json:"quantity"`
		SelectedOptions *domain.SelectedOptions `json:"selectedOptions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session := mux.Vars(r)["session"]
	cart, err := h.addItemHandler.Handle(r.Context(), command.AddItemCommand{
		SessionID:  session,
		ProductID:  req.ProductID,
		QuantityKg: req.Quantity,
		Options:    req.SelectedOptions,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.cartAdds.WithLabelValues("product").Inc()

	h.respondCart(w, r, session, cart)
}

// UpdateItem handles PATCH /api/cart/{session}/items/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vars := mux.Vars(r)
	cart, err := h.updateItemHandler.Handle(r.Context(), command.UpdateItemCommand{
		SessionID:  vars["session"],
		ProductID:  vars["productId"],
		QuantityKg: *req.Quantity,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondCart(w, r, vars["session"], cart)
}

// RemoveItem handles DELETE /api/cart/{session}/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cart, err := h.removeItemHandler.Handle(r.Context(), command.RemoveItemCommand{
		SessionID: vars["session"],
		ProductID: vars["productId"],
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondCart(w, r, vars["session"], cart)
}

// ClearCart handles DELETE /api/cart/{session}
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session := mux.Vars(r)["session"]
	cart, err := h.clearCartHandler.Handle(r.Context(), command.ClearCartCommand{SessionID: session})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondCart(w, r, session, cart)
}

// AddPackage handles POST /api/cart/{session}/packages/{slug}
func (h *CartHandler) AddPackage(w http.ResponseWriter, r *http.Request) {
	var sel customize.Selection
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
			httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	vars := mux.Vars(r)
	cart, err := h.addPackageHandler.Handle(r.Context(), command.AddPackageCommand{
		SessionID: vars["session"],
		Slug:      vars["slug"],
		Selection: sel,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.cartAdds.WithLabelValues("package").Inc()

	h.respondCart(w, r, vars["session"], cart)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, session string, cart domain.Cart) {
	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    query.NewCartView(session, cart, lang(r)),
	})
}

func (h *CartHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errs, ok := catalogdomain.AsValidation(err); ok {
		httpx.RespondFieldErrors(w, "Validation failed", errs.Fields())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSession):
		httpx.RespondError(w, http.StatusBadRequest, "Invalid cart session")
	case errors.Is(err, catalogdomain.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Not found")
	case customize.IsInputError(err):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg("Cart request failed")
		httpx.RespondError(w, http.StatusInternalServerError, "Cart request failed")
	}
}

// lang picks the display language for formatted prices
func lang(r *http.Request) string {
	if r.URL.Query().Get("lang") == "bn" {
		return "bn"
	}
	return "en"
}
