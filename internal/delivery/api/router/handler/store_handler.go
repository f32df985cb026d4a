package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storerate/internal/delivery/api/middleware"
	"storerate/internal/delivery/api/response"
	"storerate/internal/domain/entity"
	"storerate/internal/domain/repository"
	"storerate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StoreUC usecase.StoreUsecase
	Logger  *slog.Logger
}

// StoreHandler holds dependencies for store-related handlers
type StoreHandler struct {
	storeUC usecase.StoreUsecase
	logger  *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storeUC: params.StoreUC,
		logger:  params.Logger,
	}
}

// NewOwnerRequest describes the owner account to create together with a
// store, inside one transaction.
type NewOwnerRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Address  string `json:"address" validate:"max=400"`
	Password string `json:"password" validate:"required,user_password"`
}

// CreateStoreRequest represents the request body for creating a store.
// Exactly one of ownerId and owner must be provided.
type CreateStoreRequest struct {
	Name    string           `json:"name" validate:"required,max=60"`
	Email   string           `json:"email" validate:"required,email,max=255"`
	Address string           `json:"address" validate:"max=400"`
	OwnerID int64            `json:"ownerId"`
	Owner   *NewOwnerRequest `json:"owner"`
}

// UpdateStoreRequest represents the request body for modifying a store.
// Empty fields are left unchanged.
type UpdateStoreRequest struct {
	Name    string `json:"name" validate:"omitempty,max=60"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Address string `json:"address" validate:"omitempty,max=400"`
	OwnerID int64  `json:"ownerId"`
}

// StoreResponse is the API projection of a store.
type StoreResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreSummaryResponse is a store joined with its live average and, for
// authenticated callers, their own score. averageRating is null until the
// first rating lands.
type StoreSummaryResponse struct {
	StoreResponse
	AverageRating *float64 `json:"averageRating"`
	UserRating    *int     `json:"userRating,omitempty"`
}

// OwnedStoreResponse is a store with its full rating history, for the
// owner dashboard.
type OwnedStoreResponse struct {
	StoreResponse
	AverageRating *float64          `json:"averageRating"`
	Ratings       []*RatingResponse `json:"ratings"`
}

func toStoreResponse(store *entity.Store) *StoreResponse {
	if store == nil {
		return nil
	}

	return &StoreResponse{
		ID:        store.ID,
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}

func toStoreSummaryResponse(summary *entity.StoreSummary) *StoreSummaryResponse {
	if summary == nil {
		return nil
	}

	return &StoreSummaryResponse{
		StoreResponse: *toStoreResponse(&summary.Store),
		AverageRating: summary.AverageRating,
		UserRating:    summary.UserRating,
	}
}

func toOwnedStoreResponse(owned *entity.OwnedStore) *OwnedStoreResponse {
	if owned == nil {
		return nil
	}

	ratings := make([]*RatingResponse, 0, len(owned.Ratings))
	for _, rating := range owned.Ratings {
		ratings = append(ratings, toRatingResponse(rating))
	}

	return &OwnedStoreResponse{
		StoreResponse: *toStoreResponse(&owned.Store),
		AverageRating: owned.AverageRating,
		Ratings:       ratings,
	}
}

func storeFilterFromQuery(c echo.Context) repository.StoreFilter {
	return repository.StoreFilter{
		Name:         c.QueryParam("name"),
		Email:        c.QueryParam("email"),
		Address:      c.QueryParam("address"),
		SortByRating: c.QueryParam("sortByRating"),
	}
}

// List returns all stores matching the query filters. Anonymous callers
// see averages only; authenticated callers also see their own score.
func (h *StoreHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)

	summaries, err := h.storeUC.List(c.Request().Context(), storeFilterFromQuery(c), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*StoreSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, toStoreSummaryResponse(summary))
	}

	return response.Success(c, http.StatusOK, out)
}

// Get returns a single store with its current average
func (h *StoreHandler) Get(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "Store id must be numeric")
	}

	summary, err := h.storeUC.Get(c.Request().Context(), storeID, middleware.GetUserID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toStoreSummaryResponse(summary))
}

// Unrated suggests stores the caller has not rated yet
func (h *StoreHandler) Unrated(c echo.Context) error {
	userID := middleware.GetUserID(c)

	stores, err := h.storeUC.Unrated(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*StoreResponse, 0, len(stores))
	for _, store := range stores {
		out = append(out, toStoreResponse(store))
	}

	return response.Success(c, http.StatusOK, out)
}

// OwnerStores returns the caller's stores with their rating history
func (h *StoreHandler) OwnerStores(c echo.Context) error {
	ownerID := middleware.GetUserID(c)

	owned, err := h.storeUC.OwnerStores(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*OwnedStoreResponse, 0, len(owned))
	for _, store := range owned {
		out = append(out, toOwnedStoreResponse(store))
	}

	return response.Success(c, http.StatusOK, out)
}

// Create registers a new store, optionally creating its owner account in
// the same transaction
func (h *StoreHandler) Create(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	if (req.OwnerID == 0) == (req.Owner == nil) {
		return response.BadRequest(c, "INVALID_INPUT", "Exactly one of ownerId and owner must be provided")
	}

	input := &usecase.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}
	if req.Owner != nil {
		input.Owner = &usecase.NewOwnerInput{
			Name:     req.Owner.Name,
			Email:    req.Owner.Email,
			Address:  req.Owner.Address,
			Password: req.Owner.Password,
		}
	}

	store, err := h.storeUC.Create(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toStoreResponse(store))
}

// Update modifies an existing store
func (h *StoreHandler) Update(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "Store id must be numeric")
	}

	var req UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	store, err := h.storeUC.Update(c.Request().Context(), storeID, &usecase.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toStoreResponse(store))
}

// Delete removes a store
func (h *StoreHandler) Delete(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "Store id must be numeric")
	}

	if err := h.storeUC.Delete(c.Request().Context(), storeID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "deleted"})
}
