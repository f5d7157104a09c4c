package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/phillip/pet-adoption-go/models"
	store "github.com/phillip/pet-adoption-go/store"
)

const (
	DefaultLimit = 6
	MaxLimit     = 100
)

type PetService struct {
	pets store.Collection
	now  func() time.Time
}

func NewPetService(db store.Database) *PetService {
	return &PetService{
		pets: db.Collection(models.PetCollection),
		now:  time.Now,
	}
}

type PetListParams struct {
	Search   string
	Category string
	Page     int64 // one-based
	Limit    int64
}

// Add stores a new listing. createdAt and adopted are always server-set.
func (s *PetService) Add(ctx context.Context, pet bson.M) (primitive.ObjectID, error) {
	if err := requireEmail(pet, models.FieldCreatorEmail, "creatorEmail is required"); err != nil {
		return primitive.NilObjectID, err
	}

	doc := withoutID(pet)
	doc[models.FieldCreatedAt] = s.now()
	doc[models.FieldAdopted] = false

	id, err := s.pets.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: insert pet: %w", ErrStore, err)
	}
	return id, nil
}

// List returns one page of pets still up for adoption, newest first.
func (s *PetService) List(ctx context.Context, p PetListParams) (models.PetPage, error) {
	if p.Page < 1 {
		return models.PetPage{}, invalid("page must be 1 or greater")
	}
	if err := checkLimit(p.Limit); err != nil {
		return models.PetPage{}, err
	}

	filter := store.Filter{Equals: map[string]any{models.FieldAdopted: false}}
	if search := strings.TrimSpace(p.Search); search != "" {
		filter.Contains = map[string]string{models.FieldName: search}
	}
	if p.Category != "" {
		filter.Equals[models.FieldCategory] = p.Category
	}

	skip := (p.Page - 1) * p.Limit
	pets, err := s.pets.Find(ctx, store.Query{
		Filter: filter,
		SortBy: models.FieldCreatedAt,
		Skip:   skip,
		Limit:  p.Limit,
	})
	if err != nil {
		return models.PetPage{}, fmt.Errorf("%w: find pets: %w", ErrStore, err)
	}

	total, err := s.pets.Count(ctx, filter)
	if err != nil {
		return models.PetPage{}, fmt.Errorf("%w: count pets: %w", ErrStore, err)
	}

	return models.PetPage{
		Pets:    pets,
		HasMore: skip+int64(len(pets)) < total,
	}, nil
}

func (s *PetService) GetByID(ctx context.Context, id string) (bson.M, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	pet, err := s.pets.FindByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find pet: %w", ErrStore, err)
	}
	return pet, nil
}

// GetMine lists every pet a user created, adopted ones included.
func (s *PetService) GetMine(ctx context.Context, email string) ([]bson.M, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("Email is required")
	}

	pets, err := s.pets.Find(ctx, store.Query{
		Filter: store.Filter{Equals: map[string]any{models.FieldCreatorEmail: email}},
		SortBy: models.FieldCreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: find pets by creator: %w", ErrStore, err)
	}
	return pets, nil
}

// Update merges fields into the pet.
func (s *PetService) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := withoutID(fields)
	if len(set) == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return invalid("no fields to update")
	}

	res, err := s.pets.UpdateByID(ctx, oid, set)
	if err != nil {
		return fmt.Errorf("%w: update pet: %w", ErrStore, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PetService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	n, err := s.pets.DeleteByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("%w: delete pet: %w", ErrStore, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func checkLimit(limit int64) error {
	if limit < 1 || limit > MaxLimit {
		return invalid(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	return nil
}

// withoutID copies doc minus any client-supplied _id.
func withoutID(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k == models.FieldID {
			continue
		}
		out[k] = v
	}
	return out
}
