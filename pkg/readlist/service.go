package readlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceInterface interface {
	List(ctx context.Context, userID int64) ([]*Item, error)
	Add(ctx context.Context, userID int64, item Item) (*Item, bool, error)
	Remove(ctx context.Context, userID int64, provider, providerID string) error
}

type Service struct {
	Repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Item, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Add stores item for the user. If the user already saved the same
// provider item, the stored one is returned with created == false.
func (s *Service) Add(ctx context.Context, userID int64, item Item) (*Item, bool, error) {
	item.Provider = strings.TrimSpace(item.Provider)
	item.ProviderID = strings.TrimSpace(item.ProviderID)
	if item.Provider == "" || item.ProviderID == "" || strings.TrimSpace(item.Title) == "" {
		return nil, false, ErrValidation
	}

	existing, err := s.Repo.FindOne(ctx, userID, item.Provider, item.ProviderID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	item.ID = primitive.NilObjectID
	item.UserID = userID
	item.CreatedAt = s.now().UTC()

	if err := s.Repo.Create(ctx, &item); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			existing, ferr := s.Repo.FindOne(ctx, userID, item.Provider, item.ProviderID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &item, true, nil
}

func (s *Service) Remove(ctx context.Context, userID int64, provider, providerID string) error {
	provider, providerID = strings.TrimSpace(provider), strings.TrimSpace(providerID)
	if provider == "" || providerID == "" {
		return ErrValidation
	}

	existing, err := s.Repo.FindOne(ctx, userID, provider, providerID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, existing.ID)
}
