package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"carzi/internal/models"
	"carzi/internal/repositories/interfaces"
	"carzi/internal/utils"
	"carzi/pkg/logger"
	"carzi/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarService interface {
	CreateCar(ctx context.Context, ownerID primitive.ObjectID, req *CreateCarRequest, images []*multipart.FileHeader) (*models.Car, error)
	GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	ListCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetOwnerCars(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error)
	UpdateCar(ctx context.Context, id, requesterID primitive.ObjectID, req *UpdateCarRequest) (*models.Car, error)
	DeleteCar(ctx context.Context, id, requesterID primitive.ObjectID) error
	GetCarLocation(ctx context.Context, id primitive.ObjectID) (*models.LocationCoords, error)

	// ReconcileAvailability frees cars whose blocking booking has run out.
	// Returns the number of cars flipped back to available.
	ReconcileAvailability(ctx context.Context) (int, error)
}

type CreateCarRequest struct {
	Title               string                  `json:"title" form:"title" validate:"required,min=3,max=120"`
	Brand               string                  `json:"brand" form:"brand" validate:"required"`
	Model               string                  `json:"model" form:"model" validate:"required"`
	Year                int                     `json:"year" form:"year" validate:"required,min=1980"`
	CarType             string                  `json:"car_type" form:"car_type" validate:"required"`
	Transmission        models.TransmissionType `json:"transmission" form:"transmission" validate:"required,oneof=manual automatic"`
	Fuel                models.FuelType         `json:"fuel" form:"fuel" validate:"required,oneof=petrol diesel electric hybrid cng"`
	Seats               int                     `json:"seats" form:"seats" validate:"required,min=2,max=12"`
	PricePerDay         float64                 `json:"price_per_day" form:"price_per_day" validate:"required,gt=0"`
	Location            string                  `json:"location" form:"location" validate:"required"`
	Lat                 float64                 `json:"lat" form:"lat"`
	Lng                 float64                 `json:"lng" form:"lng"`
	Features            []string                `json:"features" form:"features"`
	CarNumber           string                  `json:"car_number" form:"car_number" validate:"required"`
	HasInsurance        bool                    `json:"has_insurance" form:"has_insurance"`
	InsuranceExpiryDate string                  `json:"insurance_expiry_date" form:"insurance_expiry_date"`
}

type UpdateCarRequest struct {
	Title        string   `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	PricePerDay  float64  `json:"price_per_day,omitempty" validate:"omitempty,gt=0"`
	Location     string   `json:"location,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Features     []string `json:"features,omitempty"`
	HasInsurance *bool    `json:"has_insurance,omitempty"`
}

type carService struct {
	carRepo     interfaces.CarRepository
	bookingRepo interfaces.BookingRepository
	storage     storage.Provider
	logger      *logger.Logger
}

func NewCarService(
	carRepo interfaces.CarRepository,
	bookingRepo interfaces.BookingRepository,
	store storage.Provider,
	log *logger.Logger,
) CarService {
	return &carService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		storage:     store,
		logger:      log,
	}
}

func (s *carService) CreateCar(ctx context.Context, ownerID primitive.ObjectID, req *CreateCarRequest, images []*multipart.FileHeader) (*models.Car, error) {
	if len(images) < utils.MinCarImages {
		return nil, ErrTooFewImages
	}
	if len(images) > utils.MaxCarImages {
		return nil, ErrTooManyImages
	}

	urls, err := s.uploadImages(ctx, ownerID, images)
	if err != nil {
		return nil, err
	}

	car := &models.Car{
		OwnerID:      ownerID,
		Title:        req.Title,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		CarType:      req.CarType,
		Transmission: req.Transmission,
		Fuel:         req.Fuel,
		Seats:        req.Seats,
		PricePerDay:  req.PricePerDay,
		Location:     req.Location,
		Images:       urls,
		Features:     req.Features,
		Available:    true,
		CarNumber:    req.CarNumber,
		HasInsurance: req.HasInsurance,
	}

	if req.Lat != 0 || req.Lng != 0 {
		car.LocationCoords = &models.LocationCoords{Lat: req.Lat, Lng: req.Lng}
	}
	if req.InsuranceExpiryDate != "" {
		if expiry, err := time.Parse("2006-01-02", req.InsuranceExpiryDate); err == nil {
			car.InsuranceExpiryDate = &expiry
		}
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	s.logger.WithCarID(car.ID).WithUserID(ownerID).Info("Car listed")

	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

// ListCars reconciles availability first so browsing customers never see a
// car stuck unavailable behind an expired booking.
func (s *carService) ListCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	if _, err := s.ReconcileAvailability(ctx); err != nil {
		s.logger.WithError(err).Warn("Availability reconciliation failed during listing")
	}

	return s.carRepo.List(ctx, params)
}

func (s *carService) GetOwnerCars(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error) {
	return s.carRepo.GetByOwnerID(ctx, ownerID)
}

func (s *carService) UpdateCar(ctx context.Context, id, requesterID primitive.ObjectID, req *UpdateCarRequest) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != requesterID {
		return nil, ErrNotCarOwner
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.PricePerDay > 0 {
		updates["price_per_day"] = req.PricePerDay
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Lat != nil && req.Lng != nil {
		updates["location_coords"] = &models.LocationCoords{Lat: *req.Lat, Lng: *req.Lng}
	}
	if req.Features != nil {
		updates["features"] = req.Features
	}
	if req.HasInsurance != nil {
		updates["has_insurance"] = *req.HasInsurance
	}

	if len(updates) > 0 {
		if err := s.carRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) DeleteCar(ctx context.Context, id, requesterID primitive.ObjectID) error {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if car.OwnerID != requesterID {
		return ErrNotCarOwner
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Stored images are cleaned up best-effort; a stale object is harmless.
	for _, url := range car.Images {
		if err := s.storage.Delete(ctx, url); err != nil {
			s.logger.WithError(err).WithCarID(id).Warn("Failed to delete car image")
		}
	}

	s.logger.WithCarID(id).WithUserID(requesterID).Info("Car listing removed")

	return nil
}

func (s *carService) GetCarLocation(ctx context.Context, id primitive.ObjectID) (*models.LocationCoords, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.LocationCoords == nil {
		return &models.LocationCoords{}, nil
	}

	return car.LocationCoords, nil
}

func (s *carService) ReconcileAvailability(ctx context.Context) (int, error) {
	cars, err := s.carRepo.GetUnavailable(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	freed := 0
	for _, car := range cars {
		active, err := s.bookingRepo.HasActiveBooking(ctx, car.ID, now)
		if err != nil {
			return freed, err
		}
		if active {
			continue
		}

		if err := s.carRepo.Release(ctx, car.ID); err != nil {
			return freed, err
		}
		freed++
	}

	if freed > 0 {
		s.logger.WithField("freed", freed).Info("Cars released back to the marketplace")
	}

	return freed, nil
}

func (s *carService) uploadImages(ctx context.Context, ownerID primitive.ObjectID, images []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(images))
	for i, header := range images {
		if !utils.IsAllowedImageType(header.Filename) {
			return nil, utils.ErrUnsupportedImageType
		}
		if header.Size > utils.MaxImageSize {
			return nil, fmt.Errorf("image %s exceeds the size limit", header.Filename)
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded image: %w", err)
		}

		buf, contentType, err := utils.NormalizeImage(file, header.Filename, utils.MaxImageWidth)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w", err)
		}

		ext := "jpg"
		if contentType == "image/png" {
			ext = "png"
		}
		key := fmt.Sprintf("cars/%s/%d-%s.%s", ownerID.Hex(), time.Now().UnixNano(), utils.GenerateRandomString(8), ext)

		resp, err := s.storage.Upload(ctx, &storage.UploadRequest{
			Key:         key,
			Reader:      buf,
			ContentType: contentType,
			Size:        int64(buf.Len()),
			Metadata:    map[string]string{"owner_id": ownerID.Hex()},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %d: %w", i+1, err)
		}

		urls = append(urls, resp.URL)
	}

	return urls, nil
}
