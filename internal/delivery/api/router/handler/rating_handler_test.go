package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"storerate/internal/delivery/api/middleware"
	"storerate/internal/domain/entity"
	"storerate/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRatingUsecase struct {
	rating  *entity.Rating
	ratings []*entity.Rating
	err     error

	submittedUserID  int64
	submittedStoreID int64
	submittedInput   *usecase.SubmitRatingInput
}

func (s *stubRatingUsecase) Submit(ctx context.Context, userID, storeID int64, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	s.submittedUserID = userID
	s.submittedStoreID = storeID
	s.submittedInput = input

	return s.rating, s.err
}

func (s *stubRatingUsecase) Update(ctx context.Context, userID, storeID int64, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	return s.rating, s.err
}

func (s *stubRatingUsecase) Delete(ctx context.Context, ratingID, userID int64) error {
	return s.err
}

func (s *stubRatingUsecase) GetOwn(ctx context.Context, userID, storeID int64) (*entity.Rating, error) {
	return s.rating, s.err
}

func (s *stubRatingUsecase) ListForStore(ctx context.Context, storeID int64) ([]*entity.Rating, error) {
	return s.ratings, s.err
}

func TestRatingHandler_Submit_UsesIdentityFromContextOnly(t *testing.T) {
	stub := &stubRatingUsecase{
		rating: &entity.Rating{ID: 1, UserID: 9, StoreID: 3, Score: 4},
	}
	h := &RatingHandler{ratingUC: stub, logger: slog.Default()}

	// The body claims another user; only the verified identity counts.
	body := `{"score":4,"comment":"solid","userId":12345}`
	c, rec := newHandlerTestContext(http.MethodPost, "/rating/3", body)
	c.SetParamNames("storeId")
	c.SetParamValues("3")
	c.Set(middleware.ContextKeyUserID, int64(9))

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), stub.submittedUserID)
	assert.Equal(t, int64(3), stub.submittedStoreID)
	assert.Equal(t, 4, stub.submittedInput.Score)
}

func TestRatingHandler_Submit_RejectsOutOfRangeScore(t *testing.T) {
	stub := &stubRatingUsecase{}
	h := &RatingHandler{ratingUC: stub, logger: slog.Default()}

	c, rec := newHandlerTestContext(http.MethodPost, "/rating/3", `{"score":6}`)
	c.SetParamNames("storeId")
	c.SetParamValues("3")
	c.Set(middleware.ContextKeyUserID, int64(9))

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Nil(t, stub.submittedInput)
}

func TestRatingHandler_Delete_RejectsNonNumericID(t *testing.T) {
	h := &RatingHandler{ratingUC: &stubRatingUsecase{}, logger: slog.Default()}

	c, rec := newHandlerTestContext(http.MethodDelete, "/rating/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(middleware.ContextKeyUserID, int64(9))

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRatingHandler_ListForStore_IncludesRater(t *testing.T) {
	h := &RatingHandler{
		ratingUC: &stubRatingUsecase{
			ratings: []*entity.Rating{
				{
					ID: 1, UserID: 9, StoreID: 3, Score: 5,
					Rater: &entity.User{ID: 9, Name: "Margaret Atwood Bookworm", Email: "peggy@example.com"},
				},
			},
		},
		logger: slog.Default(),
	}

	c, rec := newHandlerTestContext(http.MethodGet, "/rating/3", "")
	c.SetParamNames("storeId")
	c.SetParamValues("3")

	require.NoError(t, h.ListForStore(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rater"`)
	assert.Contains(t, rec.Body.String(), "peggy@example.com")
	assert.NotContains(t, rec.Body.String(), "PasswordHash")
}
