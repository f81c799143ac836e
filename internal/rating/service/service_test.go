package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/repository/memory"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/service"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/service/mocks"
)

func newService(publisher *mocks.RatingEventPublisher) *service.Service {
	return service.New(memory.NewRepository(), publisher, zap.NewNop())
}

func anyPublisher() *mocks.RatingEventPublisher {
	publisher := new(mocks.RatingEventPublisher)
	publisher.On("PublishRatingChanged", mock.Anything, mock.Anything).Return(nil)
	return publisher
}

func TestCreateRating_PublishesCreatedEvent(t *testing.T) {
	publisher := new(mocks.RatingEventPublisher)
	publisher.On("PublishRatingChanged", mock.Anything, mock.MatchedBy(func(e service.RatingChangedEvent) bool {
		return e.ProductID == "p1" &&
			e.EventType == service.EventTypeCreated &&
			e.AverageRating == 4.0 &&
			e.TotalRatings == 1
	})).Return(nil)

	svc := newService(publisher)

	rating, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1",
		UserID:    "u1",
		UserName:  "Иван",
		Stars:     4,
		Comment:   "хороший товар",
	})

	require.NoError(t, err)
	assert.NotZero(t, rating.ID)
	assert.Equal(t, int32(4), rating.Stars)
	assert.Equal(t, "Иван", rating.UserName)
	// до первого изменения времени обновления нет
	assert.Nil(t, rating.UpdatedAt)
	publisher.AssertExpectations(t)
}

func TestCreateRating_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     service.CreateRatingRequest
		wantErr error
	}{
		{
			name:    "zero stars",
			req:     service.CreateRatingRequest{ProductID: "p1", UserID: "u1", Stars: 0},
			wantErr: service.ErrInvalidStars,
		},
		{
			name:    "six stars",
			req:     service.CreateRatingRequest{ProductID: "p1", UserID: "u1", Stars: 6},
			wantErr: service.ErrInvalidStars,
		},
		{
			name:    "empty product id",
			req:     service.CreateRatingRequest{ProductID: "", UserID: "u1", Stars: 3},
			wantErr: service.ErrInvalidProductID,
		},
		{
			name:    "empty user id",
			req:     service.CreateRatingRequest{ProductID: "p1", UserID: "", Stars: 3},
			wantErr: service.ErrInvalidUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := new(mocks.RatingEventPublisher)
			svc := newService(publisher)

			_, err := svc.CreateRating(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			publisher.AssertNotCalled(t, "PublishRatingChanged", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRating_Duplicate(t *testing.T) {
	svc := newService(anyPublisher())

	_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 5,
	})
	require.NoError(t, err)

	_, err = svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 3,
	})

	assert.ErrorIs(t, err, service.ErrAlreadyRated)
}

func TestCreateRating_ConcurrentDuplicates(t *testing.T) {
	// две параллельные попытки оценить один товар одним пользователем:
	// побеждает ровно одна, вторая получает ErrAlreadyRated
	svc := newService(anyPublisher())

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateRating(context.Background(), service.CreateRatingRequest{
				ProductID: "p1", UserID: "u1", Stars: 5,
			})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrAlreadyRated):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dup)
}

func TestCreateRating_PublishFailureSwallowed(t *testing.T) {
	publisher := new(mocks.RatingEventPublisher)
	publisher.On("PublishRatingChanged", mock.Anything, mock.Anything).
		Return(errors.New("kafka unavailable"))

	svc := newService(publisher)

	rating, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 4,
	})

	// оценка сохранена, несмотря на потерю события
	require.NoError(t, err)
	saved, err := svc.GetRating(context.Background(), rating.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(4), saved.Stars)
}

func TestUpdateRating(t *testing.T) {
	svc := newService(anyPublisher())

	created, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", UserName: "Иван", Stars: 3,
	})
	require.NoError(t, err)
	require.Nil(t, created.UpdatedAt)

	updated, err := svc.UpdateRating(context.Background(), service.UpdateRatingRequest{
		RatingID: created.ID,
		UserID:   "u1",
		Stars:    5,
		Comment:  "передумал",
	})

	require.NoError(t, err)
	assert.Equal(t, int32(5), updated.Stars)
	assert.Equal(t, "передумал", updated.Comment)
	// имя автора сохраняется, время обновления проставляется
	assert.Equal(t, "Иван", updated.UserName)
	require.NotNil(t, updated.UpdatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.CreatedAt))
}

func TestUpdateRating_Forbidden(t *testing.T) {
	svc := newService(anyPublisher())

	created, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 3,
	})
	require.NoError(t, err)

	_, err = svc.UpdateRating(context.Background(), service.UpdateRatingRequest{
		RatingID: created.ID,
		UserID:   "u2",
		Stars:    1,
	})

	assert.ErrorIs(t, err, service.ErrForbidden)

	// оценка не изменилась
	rating, err := svc.GetRating(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), rating.Stars)
}

func TestUpdateRating_NotFound(t *testing.T) {
	svc := newService(anyPublisher())

	_, err := svc.UpdateRating(context.Background(), service.UpdateRatingRequest{
		RatingID: 999, UserID: "u1", Stars: 5,
	})

	assert.ErrorIs(t, err, service.ErrRatingNotFound)
}

func TestDeleteRating_Forbidden(t *testing.T) {
	svc := newService(anyPublisher())

	created, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 3,
	})
	require.NoError(t, err)

	err = svc.DeleteRating(context.Background(), created.ID, "u2")

	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestDeleteRating_LastRatingResetsAggregate(t *testing.T) {
	publisher := new(mocks.RatingEventPublisher)
	var deletedEvent service.RatingChangedEvent
	publisher.On("PublishRatingChanged", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(service.RatingChangedEvent)
			if e.EventType == service.EventTypeDeleted {
				deletedEvent = e
			}
		}).
		Return(nil)

	svc := newService(publisher)

	created, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRating(context.Background(), created.ID, "u1"))

	assert.Equal(t, service.EventTypeDeleted, deletedEvent.EventType)
	assert.Equal(t, 0.0, deletedEvent.AverageRating)
	assert.Equal(t, int64(0), deletedEvent.TotalRatings)

	agg, err := svc.GetAverageRating(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, agg.Average)
	assert.Equal(t, int64(0), agg.Total)
}

func TestGetAverageRating(t *testing.T) {
	svc := newService(anyPublisher())

	// [5, 5, 4, 3, 5] -> среднее 4.4
	stars := []int32{5, 5, 4, 3, 5}
	for i, s := range stars {
		_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
			ProductID: "p1",
			UserID:    string(rune('a' + i)),
			Stars:     s,
		})
		require.NoError(t, err)
	}

	agg, err := svc.GetAverageRating(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, 4.4, agg.Average)
	assert.Equal(t, int64(5), agg.Total)
	assert.Equal(t, int64(3), agg.Histogram[5])
	assert.Equal(t, int64(1), agg.Histogram[4])
	assert.Equal(t, int64(1), agg.Histogram[3])
	assert.Equal(t, int64(0), agg.Histogram[2])
	assert.Equal(t, int64(0), agg.Histogram[1])
}

func TestGetAverageRating_RoundsHalfUp(t *testing.T) {
	// [4, 5] -> 4.5; [4, 4, 5] -> 4.333... -> 4.3
	tests := []struct {
		name  string
		stars []int32
		want  float64
	}{
		{name: "exact half", stars: []int32{4, 5}, want: 4.5},
		{name: "rounds down", stars: []int32{4, 4, 5}, want: 4.3},
		{name: "rounds up", stars: []int32{5, 5, 4}, want: 4.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(anyPublisher())
			for i, s := range tt.stars {
				_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
					ProductID: "p1",
					UserID:    string(rune('a' + i)),
					Stars:     s,
				})
				require.NoError(t, err)
			}

			agg, err := svc.GetAverageRating(context.Background(), "p1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, agg.Average)
		})
	}
}

func TestGetAverageRating_NoRatings(t *testing.T) {
	svc := newService(anyPublisher())

	agg, err := svc.GetAverageRating(context.Background(), "unknown")

	require.NoError(t, err)
	assert.Equal(t, 0.0, agg.Average)
	assert.Equal(t, int64(0), agg.Total)
	for stars := int32(1); stars <= 5; stars++ {
		assert.Equal(t, int64(0), agg.Histogram[stars])
	}
}

func TestMarkHelpful(t *testing.T) {
	publisher := anyPublisher()
	svc := newService(publisher)

	created, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 5,
	})
	require.NoError(t, err)

	rating, err := svc.MarkHelpful(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rating.HelpfulCount)
	// отметка "полезно" не порождает событие изменения рейтинга
	publisher.AssertNumberOfCalls(t, "PublishRatingChanged", 1)
}

func TestMarkHelpful_ConcurrentIncrements(t *testing.T) {
	svc := newService(anyPublisher())

	created, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u1", Stars: 5,
	})
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MarkHelpful(context.Background(), created.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rating, err := svc.GetRating(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), rating.HelpfulCount)
}

func TestMarkHelpful_NotFound(t *testing.T) {
	svc := newService(anyPublisher())

	_, err := svc.MarkHelpful(context.Background(), 999)

	assert.ErrorIs(t, err, service.ErrRatingNotFound)
}

func TestGetUserRatings(t *testing.T) {
	svc := newService(anyPublisher())

	for _, productID := range []string{"p1", "p2", "p3"} {
		_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
			ProductID: productID, UserID: "u1", Stars: 4,
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		ProductID: "p1", UserID: "u2", Stars: 2,
	})
	require.NoError(t, err)

	ratings, err := svc.GetUserRatings(context.Background(), "u1")

	require.NoError(t, err)
	assert.Len(t, ratings, 3)
	for _, r := range ratings {
		assert.Equal(t, "u1", r.UserID)
	}
}
