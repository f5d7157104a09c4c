package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/pet-adoption-go/models"
	store "github.com/phillip/pet-adoption-go/store"
)

// DonationService is an append-only log of completed donations.
type DonationService struct {
	donations store.Collection
	now       func() time.Time
}

func NewDonationService(db store.Database) *DonationService {
	return &DonationService{
		donations: db.Collection(models.DonationCollection),
		now:       time.Now,
	}
}

func (s *DonationService) Record(ctx context.Context, donation bson.M) (models.InsertResult, error) {
	doc := withoutID(donation)
	doc[models.FieldDate] = s.now()

	id, err := s.donations.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: insert donation: %w", ErrStore, err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}
