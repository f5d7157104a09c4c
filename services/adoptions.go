package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/pet-adoption-go/models"
	store "github.com/phillip/pet-adoption-go/store"
)

const notifyTimeout = 15 * time.Second

// Mailer sends a single HTML email.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// AdoptionService is an append-only log of adoption requests.
type AdoptionService struct {
	adoptions store.Collection
	mailer    Mailer
	pending   sync.WaitGroup
}

// NewAdoptionService wires the collection. mailer may be nil, in which case
// no acknowledgement email is sent.
func NewAdoptionService(db store.Database, mailer Mailer) *AdoptionService {
	return &AdoptionService{
		adoptions: db.Collection(models.AdoptionCollection),
		mailer:    mailer,
	}
}

func (s *AdoptionService) Submit(ctx context.Context, request bson.M) (models.InsertResult, error) {
	id, err := s.adoptions.InsertOne(ctx, withoutID(request))
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: insert adoption request: %w", ErrStore, err)
	}

	if to, ok := request[models.FieldEmail].(string); ok && s.mailer != nil && strings.TrimSpace(to) != "" {
		s.pending.Add(1)
		go s.acknowledge(to, request)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// acknowledge is best-effort: failures are logged and never reach the caller.
func (s *AdoptionService) acknowledge(to string, request bson.M) {
	defer s.pending.Done()
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	petName, _ := request["petName"].(string)
	if petName == "" {
		petName = "your chosen pet"
	}

	body := fmt.Sprintf(
		"<p>Thanks for your interest in adopting %s.</p><p>The owner has received your request and will be in touch.</p>",
		petName,
	)
	if err := s.mailer.SendEmail(ctx, to, "We received your adoption request", body); err != nil {
		log.Printf("adoption acknowledgement to %s failed: %v", to, err)
	}
}

// Wait blocks until queued acknowledgements finish or ctx is done.
func (s *AdoptionService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
