package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/catalog/usecase/command"
	"github.com/machbazar/storefront/internal/catalog/usecase/query"
	"github.com/machbazar/storefront/internal/customize"
	"github.com/machbazar/storefront/pkg/auth"
	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
)

// ResponseCache wraps read endpoints
type ResponseCache interface {
	Middleware(next http.HandlerFunc) http.HandlerFunc
}

// NoCache serves every request fresh
type NoCache struct{}

func (NoCache) Middleware(next http.HandlerFunc) http.HandlerFunc { return next }

// Commands groups the catalog write handlers
type Commands struct {
	CreateProduct *command.CreateProductHandler
	UpdateProduct *command.UpdateProductHandler
	UpdateStock   *command.UpdateStockHandler
	SetPublished  *command.SetPublishedHandler
	CreatePackage *command.CreatePackageHandler
	UpdatePackage *command.UpdatePackageHandler
}

// Queries groups the catalog read handlers
type Queries struct {
	ListProducts *query.ListProductsHandler
	GetProduct   *query.GetProductHandler
	ListPackages *query.ListPackagesHandler
	GetPackage   *query.GetPackageHandler
	QuotePackage *query.QuotePackageHandler
	Stats        *query.GetStatsHandler
}

// CatalogHandler handles HTTP requests for products and packages using CQRS pattern
type CatalogHandler struct {
	commands Commands
	queries  Queries

	cache         ResponseCache
	tokens        *auth.TokenService
	metrics       *httpx.Metrics
	totalProducts prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler and registers its metrics
func NewCatalogHandler(
	commands Commands,
	queries Queries,
	cache ResponseCache,
	tokens *auth.TokenService,
	reg prometheus.Registerer,
) *CatalogHandler {
	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_total_products",
			Help: "Total number of products in the catalog",
		},
	)
	reg.MustRegister(totalProducts)

	return &CatalogHandler{
		commands:      commands,
		queries:       queries,
		cache:         cache,
		tokens:        tokens,
		metrics:       httpx.NewMetrics(reg, "catalog"),
		totalProducts: totalProducts,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics.Wrap
	cached := h.cache.Middleware
	admin := h.tokens.AdminMiddleware

	// Public routes
	router.HandleFunc("/api/products", m("/api/products", cached(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/{slug}", m("/api/products/{slug}", cached(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/packages", m("/api/packages", cached(h.ListPackages))).Methods("GET")
	router.HandleFunc("/api/packages/{slug}", m("/api/packages/{slug}", cached(h.GetPackage))).Methods("GET")
	router.HandleFunc("/api/packages/{slug}/quote", m("/api/packages/{slug}/quote", h.QuotePackage)).Methods("POST")

	// Admin routes
	router.HandleFunc("/api/admin/products", m("/api/admin/products", admin(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/admin/products/stats", m("/api/admin/products/stats", admin(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/admin/products/{productId}", m("/api/admin/products/{productId}", admin(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/admin/products/{productId}/publish", m("/api/admin/products/{productId}/publish", admin(h.SetPublished))).Methods("PATCH")
	router.HandleFunc("/api/admin/products/{productId}/stock", m("/api/admin/products/{productId}/stock", admin(h.UpdateStock))).Methods("PATCH")
	router.HandleFunc("/api/admin/packages", m("/api/admin/packages", admin(h.CreatePackage))).Methods("POST")
	router.HandleFunc("/api/admin/packages/{packageId}", m("/api/admin/packages/{packageId}", admin(h.UpdatePackage))).Methods("PUT")
}

// ParseListQuery reads the catalog filter parameters. Malformed numbers and
// flags are ignored rather than rejected.
func ParseListQuery(values url.Values) query.ListProductsQuery {
	q := query.ListProductsQuery{
		FishType:    values.Get("fishType"),
		FishSizeKg:  values.Get("fishSizeKg"),
		CuttingSize: values.Get("cuttingSize"),
		Source:      values.Get("source"),
		Search:      values.Get("search"),
		SortBy:      values.Get("sortBy"),
		InStock:     cast.ToBool(values.Get("inStock")),
		Page:        cast.ToInt(values.Get("page")),
		Limit:       cast.ToInt(values.Get("limit")),
	}
	if v, err := cast.ToFloat64E(values.Get("minPrice")); err == nil && values.Get("minPrice") != "" {
		q.MinPrice = &v
	}
	if v, err := cast.ToFloat64E(values.Get("maxPrice")); err == nil && values.Get("maxPrice") != "" {
		q.MaxPrice = &v
	}
	return q
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.ListProducts.Handle(r.Context(), ParseListQuery(r.URL.Query()))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    result,
	})
}

// GetProduct handles GET /api/products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.queries.GetProduct.Handle(r.Context(), query.GetProductQuery{Slug: mux.Vars(r)["slug"]})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to get product")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    product,
	})
}

// ListPackages handles GET /api/packages
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.queries.ListPackages.Handle(r.Context())
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to list packages")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    packages,
	})
}

// GetPackage handles GET /api/packages/{slug}
func (h *CatalogHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	detail, err := h.queries.GetPackage.Handle(r.Context(), query.GetPackageQuery{Slug: mux.Vars(r)["slug"]})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to get package")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    detail,
	})
}

// QuotePackage handles POST /api/packages/{slug}/quote
func (h *CatalogHandler) QuotePackage(w http.ResponseWriter, r *http.Request) {
	var sel customize.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote, err := h.queries.QuotePackage.Handle(r.Context(), query.QuotePackageQuery{
		Slug:      mux.Vars(r)["slug"],
		Selection: sel,
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to quote package")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    quote,
	})
}

type productRequest struct {
	ProductID          string  `json:"productId"`
	Slug               string  `json:"slug"`
	NameEn             string  `json:"nameEn"`
	NameBn             string  `json:"nameBn"`
	DescriptionEn      string  `json:"descriptionEn"`
	DescriptionBn      string  `json:"descriptionBn"`
	FishType           string  `json:"fishType"`
	FishSizeKg         string  `json:"fishSizeKg"`
	Source             string  `json:"source"`
	BasePrice          float64 `json:"basePrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	StockKg            float64 `json:"stockKg"`
	MinOrderKg         float64 `json:"minOrderKg"`
	MaxOrderKg         float64 `json:"maxOrderKg"`
	CuttingSizes       string  `json:"cuttingSizes"`
	CuttingStyles      string  `json:"cuttingStyles"`
	HeadCutOptions     string  `json:"headCutOptions"`
	ImageURL           string  `json:"imageUrl"`
	Published          bool    `json:"published"`
	Featured           bool    `json:"featured"`
}

func (req productRequest) input() command.ProductInput {
	return command.ProductInput{
		Slug:               req.Slug,
		NameEn:             req.NameEn,
		NameBn:             req.NameBn,
		DescriptionEn:      req.DescriptionEn,
		DescriptionBn:      req.DescriptionBn,
		FishType:           req.FishType,
		FishSizeKg:         req.FishSizeKg,
		Source:             req.Source,
		BasePrice:          req.BasePrice,
		DiscountPercentage: req.DiscountPercentage,
		StockKg:            req.StockKg,
		MinOrderKg:         req.MinOrderKg,
		MaxOrderKg:         req.MaxOrderKg,
		CuttingSizes:       req.CuttingSizes,
		CuttingStyles:      req.CuttingStyles,
		HeadCutOptions:     req.HeadCutOptions,
		ImageURL:           req.ImageURL,
		Published:          req.Published,
		Featured:           req.Featured,
	}
}

// CreateProduct handles POST /api/admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.commands.CreateProduct.Handle(r.Context(), command.CreateProductCommand{
		ProductID:    req.ProductID,
		ProductInput: req.input(),
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to create product")
		return
	}

	logger.Info(r.Context()).
		Str("product_id", product.ProductID).
		Float64("sale_price", product.SalePrice).
		Msg("Product created")
	h.updateProductsMetric(r)

	httpx.RespondJSON(w, http.StatusCreated, httpx.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/admin/products/{productId}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.commands.UpdateProduct.Handle(r.Context(), command.UpdateProductCommand{
		ProductID:    mux.Vars(r)["productId"],
		ProductInput: req.input(),
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to update product")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// SetPublished handles PATCH /api/admin/products/{productId}/publish
func (h *CatalogHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Published *bool `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Published == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.commands.SetPublished.Handle(r.Context(), command.SetPublishedCommand{
		ProductID: mux.Vars(r)["productId"],
		Published: *req.Published,
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to update product visibility")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Product visibility updated",
	})
}

// UpdateStock handles PATCH /api/admin/products/{productId}/stock
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StockKg *float64 `json:"stockKg"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StockKg == nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.commands.UpdateStock.Handle(r.Context(), command.UpdateStockCommand{
		ProductID: mux.Vars(r)["productId"],
		StockKg:   *req.StockKg,
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to update stock")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Stock updated successfully",
	})
}

type packageRequest struct {
	PackageID          string               `json:"packageId"`
	Slug               string               `json:"slug"`
	NameEn             string               `json:"nameEn"`
	NameBn             string               `json:"nameBn"`
	DescriptionEn      string               `json:"descriptionEn"`
	DescriptionBn      string               `json:"descriptionBn"`
	BasePrice          float64              `json:"basePrice"`
	DiscountPercentage float64              `json:"discountPercentage"`
	Frequency          string               `json:"frequency"`
	Items              []domain.PackageItem `json:"items"`
	Published          bool                 `json:"published"`
}

func (req packageRequest) input() command.PackageInput {
	return command.PackageInput{
		Slug:               req.Slug,
		NameEn:             req.NameEn,
		NameBn:             req.NameBn,
		DescriptionEn:      req.DescriptionEn,
		DescriptionBn:      req.DescriptionBn,
		BasePrice:          req.BasePrice,
		DiscountPercentage: req.DiscountPercentage,
		Frequency:          req.Frequency,
		Items:              req.Items,
		Published:          req.Published,
	}
}

// CreatePackage handles POST /api/admin/packages
func (h *CatalogHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pkg, err := h.commands.CreatePackage.Handle(r.Context(), command.CreatePackageCommand{
		PackageID:    req.PackageID,
		PackageInput: req.input(),
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to create package")
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, httpx.Response{
		Success: true,
		Message: "Package created successfully",
		Data:    pkg,
	})
}

// UpdatePackage handles PUT /api/admin/packages/{packageId}
func (h *CatalogHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pkg, err := h.commands.UpdatePackage.Handle(r.Context(), command.UpdatePackageCommand{
		PackageID:    mux.Vars(r)["packageId"],
		PackageInput: req.input(),
	})
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to update package")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Message: "Package updated successfully",
		Data:    pkg,
	})
}

// GetStats handles GET /api/admin/products/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.Stats.Handle(r.Context())
	if err != nil {
		respondUsecaseError(w, r, err, "Failed to get catalog stats")
		return
	}
	h.totalProducts.Set(float64(stats.TotalProducts))

	httpx.RespondJSON(w, http.StatusOK, httpx.Response{
		Success: true,
		Data:    stats,
	})
}

// updateProductsMetric updates the total products gauge
func (h *CatalogHandler) updateProductsMetric(r *http.Request) {
	stats, err := h.queries.Stats.Handle(r.Context())
	if err == nil {
		h.totalProducts.Set(float64(stats.TotalProducts))
	}
}
