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

type OrderHandler struct {
	Handler
	service port.OrderService
}

func NewOrderHandler(service port.OrderService, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type createOrderRequest struct {
	ProductItems []productItemRequest `json:"productItems"`
}

type orderLineResponse struct {
	OrderItemID     uint64          `json:"orderItemId,omitempty"`
	ProductID       string          `json:"productId"`
	Quantity        int32           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

type orderResponse struct {
	ID          uint64              `json:"id"`
	UserID      string              `json:"user_id"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Products    []orderLineResponse `json:"products"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, orderLineResponse{
			OrderItemID:     l.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			PriceAtPurchase: l.PriceAtPurchase,
		})
	}

	return orderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		Products:    lines,
	}
}

// CreateOrder submits the authenticated subject's cart. The owning user
// id comes from the verified token only.
func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	payload := getAuthPayload(ctx)

	req := createOrderRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	items := make([]domain.CartItem, 0, len(req.ProductItems))
	for _, item := range req.ProductItems {
		items = append(items, domain.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := oh.service.CreateOrder(ctx, payload.Subject, items)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(order), http.StatusCreated)
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	payload := getAuthPayload(ctx)
	userID := ctx.Param("userId")

	list, err := oh.service.GetOrdersByUser(ctx, payload, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, order := range list {
		result = append(result, newOrderResponse(order))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	payload := getAuthPayload(ctx)

	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.GetOrder(ctx, payload, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (oh *OrderHandler) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	req := updateOrderStatusRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil || req.Status == "" {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.UpdateOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}
