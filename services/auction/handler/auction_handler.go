package handler

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_handler.go -package=handler

import (
	"context"
	"net/http"

	auction "auction-hub/internal/auctionService"
	"auction-hub/internal/models"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	ListOpen(ctx context.Context, category string) ([]models.Auction, error)
	GetAuction(ctx context.Context, id int64) (auction.Detail, error)
	CreateAuction(ctx context.Context, caller models.Caller, in auction.Input) (models.Auction, error)
	UpdateAuction(ctx context.Context, caller models.Caller, id int64, in auction.Input) (models.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

func toInput(req helpers.AuctionRequest) auction.Input {
	return auction.Input{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		HistoryLink:   req.HistoryLink,
		StartingPrice: req.StartingPrice,
		EndTime:       req.EndTime,
	}
}

// ListAuctionsHandler handles GET /api/auctions?category=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	category := c.Query("category")
	auctions, err := h.service.ListOpen(c.Request.Context(), category)
	if err != nil {
		helpers.HandleServiceError(c, "ListAuctionsHandler", err, map[string]any{"category": category})
		return
	}
	if auctions == nil {
		auctions = []models.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /api/auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "auction_id")
	if !ok {
		return
	}

	detail, err := h.service.GetAuction(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "auction retrieved successfully")
}

// CreateAuctionHandler handles POST /api/auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	caller := helpers.CallerFromContext(c)
	a, err := h.service.CreateAuction(c.Request.Context(), caller, toInput(req))
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{"user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{"auction_id": a.ID, "user_id": caller.UserID})
}

// UpdateAuctionHandler handles PUT /api/auctions/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "auction_id")
	if !ok {
		return
	}
	var req helpers.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	caller := helpers.CallerFromContext(c)
	a, err := h.service.UpdateAuction(c.Request.Context(), caller, id, toInput(req))
	if err != nil {
		helpers.HandleServiceError(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": id, "user_id": caller.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "auction updated successfully")
}
