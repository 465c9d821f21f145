package services

import (
	"context"

	"carzi/internal/models"
	"carzi/internal/repositories/interfaces"
	"carzi/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService interface {
	SubmitReview(ctx context.Context, userID primitive.ObjectID, req *SubmitReviewRequest) (*models.Review, error)
	GetCarReviews(ctx context.Context, carID primitive.ObjectID) ([]*models.Review, error)
	DeleteReview(ctx context.Context, id, requesterID primitive.ObjectID) error
}

type SubmitReviewRequest struct {
	CarID   string `json:"car_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	carRepo    interfaces.CarRepository
	logger     *logger.Logger
}

func NewReviewService(
	reviewRepo interfaces.ReviewRepository,
	carRepo interfaces.CarRepository,
	log *logger.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		carRepo:    carRepo,
		logger:     log,
	}
}

// SubmitReview stores the review and refreshes the car's denormalized rating.
// The unique (car_id, user_id) index enforces one review per user per car.
func (s *reviewService) SubmitReview(ctx context.Context, userID primitive.ObjectID, req *SubmitReviewRequest) (*models.Review, error) {
	carID, err := primitive.ObjectIDFromHex(req.CarID)
	if err != nil {
		return nil, ErrCarNotFound
	}

	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}

	if existing, err := s.reviewRepo.GetByCarAndUser(ctx, carID, userID); err == nil && existing != nil {
		return nil, ErrDuplicateReview
	} else if err != nil && err != ErrReviewNotFound {
		return nil, err
	}

	review := &models.Review{
		CarID:   carID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshCarRating(ctx, carID); err != nil {
		s.logger.WithError(err).WithCarID(carID).Error("Failed to refresh car rating after review")
	}

	s.logger.WithCarID(carID).WithUserID(userID).Info("Review submitted")

	return review, nil
}

func (s *reviewService) GetCarReviews(ctx context.Context, carID primitive.ObjectID) ([]*models.Review, error) {
	return s.reviewRepo.GetByCarID(ctx, carID)
}

func (s *reviewService) DeleteReview(ctx context.Context, id, requesterID primitive.ObjectID) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != requesterID {
		return ErrNotReviewAuthor
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.refreshCarRating(ctx, review.CarID); err != nil {
		s.logger.WithError(err).WithCarID(review.CarID).Error("Failed to refresh car rating after delete")
	}

	return nil
}

func (s *reviewService) refreshCarRating(ctx context.Context, carID primitive.ObjectID) error {
	avg, count, err := s.reviewRepo.GetCarAggregate(ctx, carID)
	if err != nil {
		return err
	}

	return s.carRepo.UpdateRating(ctx, carID, avg, count)
}
