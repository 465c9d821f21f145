package services

import (
	"context"
	"testing"

	"carzi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// inMemoryReviews backs the review mocks with a slice so the aggregate can
// be recomputed the way the database pipeline would.
type inMemoryReviews struct {
	reviews []*models.Review
}

func (s *inMemoryReviews) aggregate(carID primitive.ObjectID) (float64, int64) {
	var sum, count int64
	for _, r := range s.reviews {
		if r.CarID == carID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

func newReviewFixture(t *testing.T, carID primitive.ObjectID) (ReviewService, *inMemoryReviews, *struct {
	rating float64
	count  int64
}) {
	t.Helper()

	store := &inMemoryReviews{}
	carState := &struct {
		rating float64
		count  int64
	}{}

	reviewRepo := &mockReviewRepo{
		CreateFn: func(ctx context.Context, review *models.Review) error {
			for _, r := range store.reviews {
				if r.CarID == review.CarID && r.UserID == review.UserID {
					return ErrDuplicateReview
				}
			}
			review.ID = primitive.NewObjectID()
			store.reviews = append(store.reviews, review)
			return nil
		},
		GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
			for _, r := range store.reviews {
				if r.ID == id {
					return r, nil
				}
			}
			return nil, ErrReviewNotFound
		},
		GetByCarAndUserFn: func(ctx context.Context, cID, uID primitive.ObjectID) (*models.Review, error) {
			for _, r := range store.reviews {
				if r.CarID == cID && r.UserID == uID {
					return r, nil
				}
			}
			return nil, ErrReviewNotFound
		},
		DeleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			for i, r := range store.reviews {
				if r.ID == id {
					store.reviews = append(store.reviews[:i], store.reviews[i+1:]...)
					return nil
				}
			}
			return ErrReviewNotFound
		},
		GetCarAggregateFn: func(ctx context.Context, cID primitive.ObjectID) (float64, int64, error) {
			avg, count := store.aggregate(cID)
			return avg, count, nil
		},
	}

	carRepo := &mockCarRepo{
		GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
			if id != carID {
				return nil, ErrCarNotFound
			}
			return &models.Car{ID: carID}, nil
		},
		UpdateRatingFn: func(ctx context.Context, id primitive.ObjectID, rating float64, count int64) error {
			carState.rating = rating
			carState.count = count
			return nil
		},
	}

	return NewReviewService(reviewRepo, carRepo, testLogger()), store, carState
}

func TestSubmitReviewUpdatesAggregate(t *testing.T) {
	carID := primitive.NewObjectID()
	svc, _, carState := newReviewFixture(t, carID)

	for _, rating := range []int{4, 5, 3} {
		_, err := svc.SubmitReview(context.Background(), primitive.NewObjectID(), &SubmitReviewRequest{
			CarID:   carID.Hex(),
			Rating:  rating,
			Comment: "good trip",
		})
		if err != nil {
			t.Fatalf("SubmitReview(%d): %v", rating, err)
		}
	}

	if carState.rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", carState.rating)
	}
	if carState.count != 3 {
		t.Errorf("count = %d, want 3", carState.count)
	}
}

func TestSubmitReviewRejectsDuplicate(t *testing.T) {
	carID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	svc, _, _ := newReviewFixture(t, carID)

	req := &SubmitReviewRequest{CarID: carID.Hex(), Rating: 5, Comment: "great"}
	if _, err := svc.SubmitReview(context.Background(), userID, req); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.SubmitReview(context.Background(), userID, req); err != ErrDuplicateReview {
		t.Errorf("second review: err = %v, want ErrDuplicateReview", err)
	}
}

func TestSubmitReviewUnknownCar(t *testing.T) {
	svc, _, _ := newReviewFixture(t, primitive.NewObjectID())

	_, err := svc.SubmitReview(context.Background(), primitive.NewObjectID(), &SubmitReviewRequest{
		CarID:   primitive.NewObjectID().Hex(),
		Rating:  4,
		Comment: "ok",
	})
	if err != ErrCarNotFound {
		t.Errorf("err = %v, want ErrCarNotFound", err)
	}
}

func TestDeleteReviewRecomputesAggregate(t *testing.T) {
	carID := primitive.NewObjectID()
	svc, store, carState := newReviewFixture(t, carID)

	author := primitive.NewObjectID()
	for i, rating := range []int{4, 5, 3} {
		uid := primitive.NewObjectID()
		if i == 2 {
			uid = author
		}
		if _, err := svc.SubmitReview(context.Background(), uid, &SubmitReviewRequest{
			CarID:   carID.Hex(),
			Rating:  rating,
			Comment: "trip",
		}); err != nil {
			t.Fatalf("SubmitReview: %v", err)
		}
	}

	var target primitive.ObjectID
	for _, r := range store.reviews {
		if r.UserID == author {
			target = r.ID
		}
	}

	if err := svc.DeleteReview(context.Background(), target, author); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}

	if carState.rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", carState.rating)
	}
	if carState.count != 2 {
		t.Errorf("count = %d, want 2", carState.count)
	}
}

func TestDeleteReviewRequiresAuthor(t *testing.T) {
	carID := primitive.NewObjectID()
	svc, store, _ := newReviewFixture(t, carID)

	author := primitive.NewObjectID()
	if _, err := svc.SubmitReview(context.Background(), author, &SubmitReviewRequest{
		CarID:   carID.Hex(),
		Rating:  5,
		Comment: "great",
	}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	if err := svc.DeleteReview(context.Background(), store.reviews[0].ID, primitive.NewObjectID()); err != ErrNotReviewAuthor {
		t.Errorf("err = %v, want ErrNotReviewAuthor", err)
	}
	if len(store.reviews) != 1 {
		t.Error("review was deleted by a non-author")
	}
}
