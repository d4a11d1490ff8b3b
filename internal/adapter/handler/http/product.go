package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.ProductService
}

func NewProductHandler(service port.ProductService, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productResponse struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newProductResponse(product *domain.Product) productResponse {
	return productResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	list, err := ph.service.ListProducts(ctx)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productResponse, 0, len(list))
	for _, product := range list {
		result = append(result, newProductResponse(product))
	}

	ph.handleSuccess(ctx, result)
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, err := ph.service.GetProduct(ctx, productID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResponse(product))
}

type createProductRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
}

func (ph *ProductHandler) CreateProduct(ctx *gin.Context) {
	req := createProductRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil || req.Price == nil || req.Category == nil {
		ph.handleValidationError(ctx, err)
		return
	}

	price, err := decimal.NewFromFloat64(*req.Price)
	if err != nil {
		ph.handleError(ctx, domain.ErrInvalidProductPrice)
		return
	}

	product, err := ph.service.CreateProduct(ctx, req.Name, price, *req.Category)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newProductResponse(product), http.StatusCreated)
}

type updateProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
}

func (ph *ProductHandler) UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	req := updateProductRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	update := port.ProductUpdate{
		Name:     req.Name,
		Category: req.Category,
	}
	if req.Price != nil {
		price, err := decimal.NewFromFloat64(*req.Price)
		if err != nil {
			ph.handleError(ctx, domain.ErrInvalidProductPrice)
			return
		}
		update.Price = &price
	}

	product, err := ph.service.UpdateProduct(ctx, productID, update)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResponse(product))
}

func (ph *ProductHandler) DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, err := ph.service.DeleteProduct(ctx, productID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResponse(product))
}
