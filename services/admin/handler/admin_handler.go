package handler

//go:generate mockgen -source=admin_handler.go -destination=mock_admin_handler.go -package=handler

import (
	"context"
	"net/http"

	"auction-hub/internal/models"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type UserAdmin interface {
	ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error)
	ToggleAdmin(ctx context.Context, caller models.Caller, userID int64) (models.User, error)
}

type AuctionAdmin interface {
	ListAllAuctions(ctx context.Context, caller models.Caller) ([]models.AdminAuction, error)
	DeleteAuction(ctx context.Context, caller models.Caller, id int64) error
}

type OrderAdmin interface {
	ListAllOrders(ctx context.Context, caller models.Caller) ([]models.OrderView, error)
	UpdateStatus(ctx context.Context, caller models.Caller, orderID int64, status models.OrderStatus) (models.Order, error)
}

// AdminHandler serves the admin panel endpoints
type AdminHandler struct {
	users    UserAdmin
	auctions AuctionAdmin
	orders   OrderAdmin
}

func NewAdminHandler(users UserAdmin, auctions AuctionAdmin, orders OrderAdmin) *AdminHandler {
	return &AdminHandler{users: users, auctions: auctions, orders: orders}
}

// ListUsersHandler handles GET /api/admin/users
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context(), helpers.CallerFromContext(c))
	if err != nil {
		helpers.HandleServiceError(c, "ListUsersHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, users, "users retrieved successfully")
}

// ToggleAdminHandler handles POST /api/admin/users/:user_id/toggle-admin
func (h *AdminHandler) ToggleAdminHandler(c *gin.Context) {
	userID, ok := helpers.ParseIDParam(c, "user_id")
	if !ok {
		return
	}

	u, err := h.users.ToggleAdmin(c.Request.Context(), helpers.CallerFromContext(c), userID)
	if err != nil {
		helpers.HandleServiceError(c, "ToggleAdminHandler", err, map[string]any{"user_id": userID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, u, "admin status updated")
}

// ListAuctionsHandler handles GET /api/admin/auctions
func (h *AdminHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.auctions.ListAllAuctions(c.Request.Context(), helpers.CallerFromContext(c))
	if err != nil {
		helpers.HandleServiceError(c, "ListAuctionsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// DeleteAuctionHandler handles DELETE /api/admin/auctions/:auction_id
func (h *AdminHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "auction_id")
	if !ok {
		return
	}

	if err := h.auctions.DeleteAuction(c.Request.Context(), helpers.CallerFromContext(c), auctionID); err != nil {
		helpers.HandleServiceError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted")
}

// ListOrdersHandler handles GET /api/admin/orders
func (h *AdminHandler) ListOrdersHandler(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context(), helpers.CallerFromContext(c))
	if err != nil {
		helpers.HandleServiceError(c, "ListOrdersHandler", err, nil)
		return
	}

	resp := struct {
		Orders   []models.OrderView   `json:"orders"`
		Statuses []models.OrderStatus `json:"statuses"`
	}{Orders: orders, Statuses: models.OrderStatuses}
	utils.JSONResponse(c, http.StatusOK, resp, "orders retrieved successfully")
}

// UpdateOrderStatusHandler handles POST /api/admin/orders/:order_id/status
func (h *AdminHandler) UpdateOrderStatusHandler(c *gin.Context) {
	orderID, ok := helpers.ParseIDParam(c, "order_id")
	if !ok {
		return
	}
	var req helpers.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateOrderStatusHandler", err)
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), helpers.CallerFromContext(c), orderID, models.OrderStatus(req.Status))
	if err != nil {
		helpers.HandleServiceError(c, "UpdateOrderStatusHandler", err, map[string]any{"order_id": orderID, "status": req.Status})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewOrderResponse(o), "order status updated")
}
