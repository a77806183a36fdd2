package handler

import (
	"passr/internal/usecase"
	"passr/pkg/response"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct {
	offerUseCase *usecase.OfferUseCase
}

func NewOfferHandler(offerUseCase *usecase.OfferUseCase) *OfferHandler {
	return &OfferHandler{
		offerUseCase: offerUseCase,
	}
}

type createOfferRequest struct {
	ListingIDs  []string `json:"listing_ids" validate:"required,min=1,dive,required"`
	TotalAmount float64  `json:"total_amount" validate:"required,gt=0"`
	Message     string   `json:"message"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)

	offer, err := h.offerUseCase.CreateOffer(c.Request().Context(), buyerID, usecase.CreateOfferInput{
		ListingIDs:  req.ListingIDs,
		TotalAmount: req.TotalAmount,
		Message:     req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offer)
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	offer, err := h.offerUseCase.GetOffer(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

// ListMyOffers returns offers the caller made as a buyer.
func (h *OfferHandler) ListMyOffers(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	offers, err := h.offerUseCase.ListByBuyer(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offers)
}

// ListReceivedOffers returns offers made on the caller's listings.
func (h *OfferHandler) ListReceivedOffers(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	offers, err := h.offerUseCase.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offers)
}

type updateOfferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func (h *OfferHandler) UpdateOfferStatus(c echo.Context) error {
	var req updateOfferStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	offer, err := h.offerUseCase.SetStatus(c.Request().Context(), c.Param("id"), actorID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}
