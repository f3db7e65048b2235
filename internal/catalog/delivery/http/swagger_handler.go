package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List published products
// @Description Filter, sort and page the published catalog. Also returns the filter facets.
// @Tags Products
// @Produce json
// @Param fishType query string false "Fish type"
// @Param fishSizeKg query string false "Fish size band"
// @Param cuttingSize query string false "Offered cutting size"
// @Param source query string false "Source"
// @Param search query string false "Case-insensitive match on either name"
// @Param minPrice query number false "Minimum sale price"
// @Param maxPrice query number false "Maximum sale price"
// @Param inStock query bool false "Only products with stock"
// @Param sortBy query string false "price-asc, price-desc, popular, rating, newest"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} object{success=bool,data=object{products=array,pagination=object,filters=object}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{slug} [get]
func (h *CatalogHandler) GetProductDoc() {}

// ListPackages godoc
// @Summary List published packages
// @Tags Packages
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/packages [get]
func (h *CatalogHandler) ListPackagesDoc() {}

// GetPackage godoc
// @Summary Get package by slug
// @Description Returns the package, its products and the default (standard tier) quote
// @Tags Packages
// @Produce json
// @Param slug path string true "Package slug"
// @Success 200 {object} object{success=bool,data=object{package=object,products=array,quote=object}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/packages/{slug} [get]
func (h *CatalogHandler) GetPackageDoc() {}

// QuotePackage godoc
// @Summary Price a package customization
// @Tags Packages
// @Accept json
// @Produce json
// @Param slug path string true "Package slug"
// @Param request body object{tier=string,items=array} true "Tier and per-item choices"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/packages/{slug}/quote [post]
func (h *CatalogHandler) QuotePackageDoc() {}

// CreateProduct godoc
// @Summary Create a product
// @Description Sale price is derived from base price and discount (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{productId=string,slug=string,nameEn=string,nameBn=string,fishType=string,basePrice=number,discountPercentage=number,stockKg=number,minOrderKg=number,maxOrderKg=number,cuttingSizes=string,cuttingStyles=string,headCutOptions=string,published=bool} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/admin/products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body object true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/admin/products/{productId} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// SetPublished godoc
// @Summary Publish or unpublish a product
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param productId path string true "Product ID"
// @Param request body object{published=bool} true "Visibility"
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/admin/products/{productId}/publish [patch]
func (h *CatalogHandler) SetPublishedDoc() {}

// UpdateStock godoc
// @Summary Set product stock
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param productId path string true "Product ID"
// @Param request body object{stockKg=number} true "Stock in kg"
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/admin/products/{productId}/stock [patch]
func (h *CatalogHandler) UpdateStockDoc() {}

// GetStats godoc
// @Summary Catalog statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/admin/products/stats [get]
func (h *CatalogHandler) GetStatsDoc() {}

// CreatePackage godoc
// @Summary Create a package
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{packageId=string,slug=string,nameEn=string,basePrice=number,discountPercentage=number,frequency=string,items=array,published=bool} true "Package data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Router /api/admin/packages [post]
func (h *CatalogHandler) CreatePackageDoc() {}

// UpdatePackage godoc
// @Summary Update a package
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param packageId path string true "Package ID"
// @Param request body object true "Package data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /api/admin/packages/{packageId} [put]
func (h *CatalogHandler) UpdatePackageDoc() {}
