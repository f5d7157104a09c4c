package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/pet-adoption-go/models"
	store "github.com/phillip/pet-adoption-go/store"
)

type CampaignService struct {
	campaigns store.Collection
	now       func() time.Time
}

func NewCampaignService(db store.Database) *CampaignService {
	return &CampaignService{
		campaigns: db.Collection(models.CampaignCollection),
		now:       time.Now,
	}
}

type CampaignListParams struct {
	Email string
	Page  int64 // zero-based, unlike pets
	Limit int64
}

func (s *CampaignService) Create(ctx context.Context, campaign bson.M) (models.InsertResult, error) {
	if err := requireEmail(campaign, models.FieldCreatorEmail, "creatorEmail is required"); err != nil {
		return models.InsertResult{}, err
	}

	doc := withoutID(campaign)
	doc[models.FieldDate] = s.now()

	id, err := s.campaigns.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: insert campaign: %w", ErrStore, err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *CampaignService) List(ctx context.Context, p CampaignListParams) (models.CampaignPage, error) {
	if p.Page < 0 {
		return models.CampaignPage{}, invalid("page must be 0 or greater")
	}
	if err := checkLimit(p.Limit); err != nil {
		return models.CampaignPage{}, err
	}

	filter := store.Filter{}
	if p.Email != "" {
		filter.Equals = map[string]any{models.FieldCreatorEmail: p.Email}
	}

	total, err := s.campaigns.Count(ctx, filter)
	if err != nil {
		return models.CampaignPage{}, fmt.Errorf("%w: count campaigns: %w", ErrStore, err)
	}

	skip := p.Page * p.Limit
	campaigns, err := s.campaigns.Find(ctx, store.Query{
		Filter: filter,
		SortBy: models.FieldDate,
		Skip:   skip,
		Limit:  p.Limit,
	})
	if err != nil {
		return models.CampaignPage{}, fmt.Errorf("%w: find campaigns: %w", ErrStore, err)
	}

	return models.CampaignPage{
		Campaigns: campaigns,
		HasMore:   skip+int64(len(campaigns)) < total,
	}, nil
}

func (s *CampaignService) GetByID(ctx context.Context, id string) (bson.M, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.FindByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find campaign: %w", ErrStore, err)
	}
	return campaign, nil
}

func (s *CampaignService) GetMine(ctx context.Context, email string) ([]bson.M, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("Email is required")
	}

	campaigns, err := s.campaigns.Find(ctx, store.Query{
		Filter: store.Filter{Equals: map[string]any{models.FieldCreatorEmail: email}},
		SortBy: models.FieldDate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: find campaigns by creator: %w", ErrStore, err)
	}
	return campaigns, nil
}

// Update merges fields into the campaign. A matched campaign whose fields
// already hold the submitted values yields ErrNotModified, not ErrNotFound.
func (s *CampaignService) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := withoutID(fields)
	if len(set) == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNotModified
	}

	res, err := s.campaigns.UpdateByID(ctx, oid, set)
	if err != nil {
		return fmt.Errorf("%w: update campaign: %w", ErrStore, err)
	}
	switch {
	case res.MatchedCount == 0:
		return ErrNotFound
	case res.ModifiedCount == 0:
		return ErrNotModified
	}
	return nil
}

func (s *CampaignService) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	n, err := s.campaigns.DeleteByID(ctx, oid)
	if err != nil {
		return 0, fmt.Errorf("%w: delete campaign: %w", ErrStore, err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}
