package services

import (
	"context"
	"testing"
	"time"

	"carzi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReconcileAvailabilityFreesExpiredCars(t *testing.T) {
	expiredCar := &models.Car{ID: primitive.NewObjectID(), Available: false}
	blockedCar := &models.Car{ID: primitive.NewObjectID(), Available: false}

	released := map[primitive.ObjectID]bool{}
	carRepo := &mockCarRepo{
		GetUnavailFn: func(ctx context.Context) ([]*models.Car, error) {
			return []*models.Car{expiredCar, blockedCar}, nil
		},
		ReleaseFn: func(ctx context.Context, id primitive.ObjectID) error {
			released[id] = true
			return nil
		},
	}
	bookingRepo := &mockBookingRepo{
		HasActiveBookingFn: func(ctx context.Context, carID primitive.ObjectID, now time.Time) (bool, error) {
			// blockedCar still has a live booking; expiredCar does not.
			return carID == blockedCar.ID, nil
		},
	}

	svc := NewCarService(carRepo, bookingRepo, &mockStorage{}, testLogger())

	freed, err := svc.ReconcileAvailability(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAvailability: %v", err)
	}

	if freed != 1 {
		t.Errorf("freed = %d, want 1", freed)
	}
	if !released[expiredCar.ID] {
		t.Error("car with no active booking was not released")
	}
	if released[blockedCar.ID] {
		t.Error("car with an active booking was released")
	}
}

func TestReconcileAvailabilityFutureBookingBlocks(t *testing.T) {
	car := &models.Car{ID: primitive.NewObjectID(), Available: false}

	carRepo := &mockCarRepo{
		GetUnavailFn: func(ctx context.Context) ([]*models.Car, error) {
			return []*models.Car{car}, nil
		},
		ReleaseFn: func(ctx context.Context, id primitive.ObjectID) error {
			t.Error("car with a future-dated booking must stay blocked")
			return nil
		},
	}
	bookingRepo := &mockBookingRepo{
		HasActiveBookingFn: func(ctx context.Context, carID primitive.ObjectID, now time.Time) (bool, error) {
			// A confirmed booking whose window has not even started yet
			// still counts: end_date is in the future.
			return true, nil
		},
	}

	svc := NewCarService(carRepo, bookingRepo, &mockStorage{}, testLogger())

	freed, err := svc.ReconcileAvailability(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAvailability: %v", err)
	}
	if freed != 0 {
		t.Errorf("freed = %d, want 0", freed)
	}
}

func TestUpdateCarRequiresOwner(t *testing.T) {
	carID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	carRepo := &mockCarRepo{
		GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
			return &models.Car{ID: carID, OwnerID: ownerID, Title: "Baleno"}, nil
		},
		UpdateFn: func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
			return nil
		},
	}

	svc := NewCarService(carRepo, &mockBookingRepo{}, &mockStorage{}, testLogger())

	_, err := svc.UpdateCar(context.Background(), carID, primitive.NewObjectID(), &UpdateCarRequest{Title: "Hacked"})
	if err != ErrNotCarOwner {
		t.Errorf("stranger: err = %v, want ErrNotCarOwner", err)
	}

	if _, err := svc.UpdateCar(context.Background(), carID, ownerID, &UpdateCarRequest{Title: "Baleno Zeta"}); err != nil {
		t.Errorf("owner: %v", err)
	}
}

func TestDeleteCarRequiresOwner(t *testing.T) {
	carID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	deleted := false

	carRepo := &mockCarRepo{
		GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
			return &models.Car{ID: carID, OwnerID: ownerID}, nil
		},
		DeleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}

	svc := NewCarService(carRepo, &mockBookingRepo{}, &mockStorage{}, testLogger())

	if err := svc.DeleteCar(context.Background(), carID, primitive.NewObjectID()); err != ErrNotCarOwner {
		t.Errorf("stranger: err = %v, want ErrNotCarOwner", err)
	}
	if deleted {
		t.Fatal("car was deleted by a non-owner")
	}

	if err := svc.DeleteCar(context.Background(), carID, ownerID); err != nil {
		t.Errorf("owner: %v", err)
	}
	if !deleted {
		t.Error("owner delete did not reach the repository")
	}
}

func TestCreateCarImageCountLimits(t *testing.T) {
	svc := NewCarService(&mockCarRepo{}, &mockBookingRepo{}, &mockStorage{}, testLogger())

	req := &CreateCarRequest{Title: "Creta", PricePerDay: 2500}

	if _, err := svc.CreateCar(context.Background(), primitive.NewObjectID(), req, nil); err != ErrTooFewImages {
		t.Errorf("no images: err = %v, want ErrTooFewImages", err)
	}
}

func TestGetCarLocationMissingCoords(t *testing.T) {
	carID := primitive.NewObjectID()
	carRepo := &mockCarRepo{
		GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
			return &models.Car{ID: carID}, nil
		},
	}

	svc := NewCarService(carRepo, &mockBookingRepo{}, &mockStorage{}, testLogger())

	coords, err := svc.GetCarLocation(context.Background(), carID)
	if err != nil {
		t.Fatalf("GetCarLocation: %v", err)
	}
	if coords == nil {
		t.Fatal("expected zero coords, got nil")
	}
	if coords.Lat != 0 || coords.Lng != 0 {
		t.Errorf("coords = %+v, want zero values", coords)
	}
}
