package handler

import (
	"passr/internal/domain/repository"
	"passr/internal/usecase"
	"passr/pkg/response"
	"passr/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=100"`
	Description     string   `json:"description" validate:"required,min=10"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Category        string   `json:"category" validate:"required"`
	Brand           string   `json:"brand"`
	Condition       string   `json:"condition" validate:"required"`
	LivingCommunity string   `json:"living_community"`
	Urgent          bool     `json:"urgent"`
	EventDate       string   `json:"event_date"`
	Venue           string   `json:"venue"`
	Images          []string `json:"images" validate:"omitempty,dive,url"`
	CoverImage      string   `json:"cover_image" validate:"omitempty,url"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sellerID, usecase.CreateListingInput{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Brand:           req.Brand,
		Condition:       req.Condition,
		LivingCommunity: req.LivingCommunity,
		Urgent:          req.Urgent,
		EventDate:       req.EventDate,
		Venue:           req.Venue,
		Images:          req.Images,
		CoverImage:      req.CoverImage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := repository.ListingFilter{
		Category:    c.QueryParam("category"),
		SellerID:    c.QueryParam("seller_id"),
		ExcludeSold: c.QueryParam("exclude_sold") == "true",
		SortBy:      c.QueryParam("sort"),
	}
	filter.MinPrice = float64(utils.QueryInt(c, "min_price", 0))
	filter.MaxPrice = float64(utils.QueryInt(c, "max_price", 0))

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), repository.ListingFilter{
		SellerID: sellerID,
	}, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

type updateListingRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description     *string  `json:"description" validate:"omitempty,min=10"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	Category        *string  `json:"category"`
	Brand           *string  `json:"brand"`
	Condition       *string  `json:"condition"`
	LivingCommunity *string  `json:"living_community"`
	Urgent          *bool    `json:"urgent"`
	EventDate       *string  `json:"event_date"`
	Venue           *string  `json:"venue"`
	Images          []string `json:"images" validate:"omitempty,dive,url"`
	CoverImage      *string  `json:"cover_image"`
	Sold            *bool    `json:"sold"`
	SoldToUserID    *string  `json:"sold_to_user_id"`
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), c.Param("id"), actorID, usecase.UpdateListingInput{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Brand:           req.Brand,
		Condition:       req.Condition,
		LivingCommunity: req.LivingCommunity,
		Urgent:          req.Urgent,
		EventDate:       req.EventDate,
		Venue:           req.Venue,
		Images:          req.Images,
		CoverImage:      req.CoverImage,
		Sold:            req.Sold,
		SoldToUserID:    req.SoldToUserID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	actorID := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

// ExpireListing backdates a listing's deadline so the cleanup pipeline can
// be exercised end to end. Only routed in development.
func (h *ListingHandler) ExpireListing(c echo.Context) error {
	actorID := c.Get("uid").(string)

	listing, err := h.listingUseCase.ExpireListing(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
