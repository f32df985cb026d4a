package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storerate/internal/delivery/api/middleware"
	"storerate/internal/delivery/api/response"
	"storerate/internal/domain/entity"
	"storerate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RatingHandlerParams holds dependencies for RatingHandler, injected by Fx.
type RatingHandlerParams struct {
	fx.In

	RatingUC usecase.RatingUsecase
	Logger   *slog.Logger
}

// RatingHandler holds dependencies for rating-related handlers
type RatingHandler struct {
	ratingUC usecase.RatingUsecase
	logger   *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler
func NewRatingHandler(params RatingHandlerParams) *RatingHandler {
	return &RatingHandler{
		ratingUC: params.RatingUC,
		logger:   params.Logger,
	}
}

// SubmitRatingRequest represents the request body for submitting or
// overwriting a rating
type SubmitRatingRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=400"`
}

// RaterResponse identifies the author of a rating on owner-facing reads.
type RaterResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RatingResponse is the API projection of a rating.
type RatingResponse struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	StoreID   int64          `json:"storeId"`
	Score     int            `json:"score"`
	Comment   string         `json:"comment,omitempty"`
	Rater     *RaterResponse `json:"rater,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func toRatingResponse(rating *entity.Rating) *RatingResponse {
	if rating == nil {
		return nil
	}

	out := &RatingResponse{
		ID:        rating.ID,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	if rating.Rater != nil {
		out.Rater = &RaterResponse{
			ID:    rating.Rater.ID,
			Name:  rating.Rater.Name,
			Email: rating.Rater.Email,
		}
	}

	return out
}

func (h *RatingHandler) bindSubmit(c echo.Context) (int64, *usecase.SubmitRatingInput, error) {
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		return 0, nil, response.BadRequest(c, "INVALID_PARAMETER", "Store id must be numeric")
	}

	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return 0, nil, response.BadRequest(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return 0, nil, response.HandleAppError(c, err)
	}

	return storeID, &usecase.SubmitRatingInput{Score: req.Score, Comment: req.Comment}, nil
}

// Submit records or overwrites the caller's rating for a store
func (h *RatingHandler) Submit(c echo.Context) error {
	storeID, input, err := h.bindSubmit(c)
	if input == nil {
		return err
	}

	rating, err := h.ratingUC.Submit(c.Request().Context(), middleware.GetUserID(c), storeID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRatingResponse(rating))
}

// Update overwrites an existing rating; unlike Submit it fails when the
// caller has not rated the store yet
func (h *RatingHandler) Update(c echo.Context) error {
	storeID, input, err := h.bindSubmit(c)
	if input == nil {
		return err
	}

	rating, err := h.ratingUC.Update(c.Request().Context(), middleware.GetUserID(c), storeID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRatingResponse(rating))
}

// Delete removes the caller's own rating
func (h *RatingHandler) Delete(c echo.Context) error {
	ratingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "Rating id must be numeric")
	}

	if err := h.ratingUC.Delete(c.Request().Context(), ratingID, middleware.GetUserID(c)); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetOwn returns the caller's rating for a store, if any
func (h *RatingHandler) GetOwn(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "Store id must be numeric")
	}

	rating, err := h.ratingUC.GetOwn(c.Request().Context(), middleware.GetUserID(c), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRatingResponse(rating))
}

// ListForStore returns all ratings for a store
func (h *RatingHandler) ListForStore(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "Store id must be numeric")
	}

	ratings, err := h.ratingUC.ListForStore(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		out = append(out, toRatingResponse(rating))
	}

	return response.Success(c, http.StatusOK, out)
}
