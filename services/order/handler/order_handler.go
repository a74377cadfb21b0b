package handler

//go:generate mockgen -source=order_handler.go -destination=mock_order_handler.go -package=handler

import (
	"context"
	"net/http"

	"auction-hub/internal/models"
	order "auction-hub/internal/orderService"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type OrderServiceInterface interface {
	CheckEligibility(ctx context.Context, caller models.Caller, auctionID int64) (order.Eligibility, error)
	Checkout(ctx context.Context, caller models.Caller, auctionID int64, address, payment string) (models.Order, error)
}

type OrderHandler struct {
	service OrderServiceInterface
}

func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// EligibilityHandler handles GET /api/auctions/:auction_id/order
func (h *OrderHandler) EligibilityHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "auction_id")
	if !ok {
		return
	}

	caller := helpers.CallerFromContext(c)
	eligibility, err := h.service.CheckEligibility(c.Request.Context(), caller, auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "EligibilityHandler", err, map[string]any{"auction_id": auctionID, "user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, eligibility, "auction ready for checkout")
}

// CheckoutHandler handles POST /api/auctions/:auction_id/order
func (h *OrderHandler) CheckoutHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "auction_id")
	if !ok {
		return
	}
	var req helpers.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CheckoutHandler", err)
		return
	}

	caller := helpers.CallerFromContext(c)
	o, err := h.service.Checkout(c.Request.Context(), caller, auctionID, req.Address, req.PaymentMethod)
	if err != nil {
		helpers.HandleServiceError(c, "CheckoutHandler", err, map[string]any{"auction_id": auctionID, "user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewOrderResponse(o), "order placed successfully")
	helpers.LogSuccess("CheckoutHandler", "order placed", map[string]any{"order_id": o.ID, "auction_id": auctionID})
}
