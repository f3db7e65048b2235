package main

// @title Machbazar Storefront API
// @version 1.0
// @description Fresh fish storefront: catalog, customizable packages, session carts, checkout with manual payment verification and admin management.

// @contact.name Machbazar Support
// @contact.email support@machbazar.com.bd

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Published catalog, filters and facets

// @tag.name Packages
// @tag.description Fish packages and tier customization

// @tag.name Cart
// @tag.description Session carts

// @tag.name Orders
// @tag.description Checkout and order tracking

// @tag.name Admin
// @tag.description Catalog, order and payment management

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
