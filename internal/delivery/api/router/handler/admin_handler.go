package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storerate/internal/delivery/api/response"
	"storerate/internal/domain/entity"
	"storerate/internal/domain/repository"
	"storerate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler holds dependencies for the admin read views
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// StoreAverageResponse is one per-store aggregate on the dashboard.
type StoreAverageResponse struct {
	StoreID       int64   `json:"storeId"`
	AverageRating float64 `json:"averageRating"`
}

// DashboardResponse aggregates the system totals for the admin landing view.
type DashboardResponse struct {
	TotalUsers    int64                   `json:"totalUsers"`
	TotalStores   int64                   `json:"totalStores"`
	TotalRatings  int64                   `json:"totalRatings"`
	StoreAverages []*StoreAverageResponse `json:"storeAverages"`
}

// UserDetailsResponse is an account plus, for store owners, their stores.
type UserDetailsResponse struct {
	User   *UserResponse         `json:"user"`
	Stores []*OwnedStoreResponse `json:"stores,omitempty"`
}

// Dashboard returns the system totals and per-store averages
func (h *AdminHandler) Dashboard(c echo.Context) error {
	out, err := h.adminUC.Dashboard(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	averages := make([]*StoreAverageResponse, 0, len(out.StoreAverages))
	for _, avg := range out.StoreAverages {
		averages = append(averages, &StoreAverageResponse{
			StoreID:       avg.StoreID,
			AverageRating: avg.AverageRating,
		})
	}

	return response.Success(c, http.StatusOK, &DashboardResponse{
		TotalUsers:    out.TotalUsers,
		TotalStores:   out.TotalStores,
		TotalRatings:  out.TotalRatings,
		StoreAverages: averages,
	})
}

// Users lists accounts matching the query filters
func (h *AdminHandler) Users(c echo.Context) error {
	filter := repository.UserFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    entity.Role(c.QueryParam("role")),
	}

	users, err := h.adminUC.Users(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return response.Success(c, http.StatusOK, out)
}

// Stores lists stores matching the query filters, with averages
func (h *AdminHandler) Stores(c echo.Context) error {
	summaries, err := h.adminUC.Stores(c.Request().Context(), storeFilterFromQuery(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*StoreSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, toStoreSummaryResponse(summary))
	}

	return response.Success(c, http.StatusOK, out)
}

// UserDetails returns one account and, for store owners, their stores with
// rating history
func (h *AdminHandler) UserDetails(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userid"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_PARAMETER", "User id must be numeric")
	}

	details, err := h.adminUC.UserDetails(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	stores := make([]*OwnedStoreResponse, 0, len(details.Stores))
	for _, store := range details.Stores {
		stores = append(stores, toOwnedStoreResponse(store))
	}

	return response.Success(c, http.StatusOK, &UserDetailsResponse{
		User:   toUserResponse(details.User),
		Stores: stores,
	})
}
