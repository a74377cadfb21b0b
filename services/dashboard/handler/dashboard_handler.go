package handler

//go:generate mockgen -source=dashboard_handler.go -destination=mock_dashboard_handler.go -package=handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auction-hub/internal/models"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

// Dashboard tabs
const (
	TabMyBids     = "my-bids"
	TabMyAuctions = "my-auctions"
	TabMyOrders   = "my-orders"
)

type BidLister interface {
	GetUserBids(ctx context.Context, caller models.Caller, page models.PageRequest) (models.Page[models.UserBid], error)
}

type AuctionLister interface {
	ListSellerAuctions(ctx context.Context, caller models.Caller, page models.PageRequest) (models.Page[models.SellerAuction], error)
}

type OrderLister interface {
	ListUserOrders(ctx context.Context, caller models.Caller, page models.PageRequest) (models.Page[models.OrderView], error)
}

// DashboardHandler serves the paged tabs of the user dashboard
type DashboardHandler struct {
	bids     BidLister
	auctions AuctionLister
	orders   OrderLister
	pageSize int
}

func NewDashboardHandler(bids BidLister, auctions AuctionLister, orders OrderLister, pageSize int) *DashboardHandler {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	return &DashboardHandler{bids: bids, auctions: auctions, orders: orders, pageSize: pageSize}
}

// DashboardHandler handles GET /api/dashboard?tab=&page=
func (h *DashboardHandler) DashboardHandler(c *gin.Context) {
	tab := c.DefaultQuery("tab", TabMyBids)
	page := helpers.PageFromQuery(c, h.pageSize)
	caller := helpers.CallerFromContext(c)
	ctx := c.Request.Context()

	var (
		items   any
		hasMore bool
		err     error
	)
	switch tab {
	case TabMyBids:
		var p models.Page[models.UserBid]
		p, err = h.bids.GetUserBids(ctx, caller, page)
		items, hasMore = p.Items, p.HasMore
	case TabMyAuctions:
		var p models.Page[models.SellerAuction]
		p, err = h.auctions.ListSellerAuctions(ctx, caller, page)
		items, hasMore = p.Items, p.HasMore
	case TabMyOrders:
		var p models.Page[models.OrderView]
		p, err = h.orders.ListUserOrders(ctx, caller, page)
		if err == nil {
			views := make([]orderRow, 0, len(p.Items))
			for _, o := range p.Items {
				views = append(views, orderRow{OrderView: o, EstimatedDelivery: o.EstimatedDelivery()})
			}
			items, hasMore = views, p.HasMore
		}
	default:
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("unknown tab %q", tab), "invalid tab")
		return
	}
	if err != nil {
		helpers.HandleServiceError(c, "DashboardHandler", err, map[string]any{"tab": tab, "user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.DashboardResponse{
		Tab:     tab,
		Page:    page.Page,
		Items:   items,
		HasMore: hasMore,
	}, "dashboard retrieved successfully")
}

type orderRow struct {
	models.OrderView
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}
