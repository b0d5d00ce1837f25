package catalog

import (
	"context"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/mobileriadardania/storefront/internal/domain"
	"go.uber.org/zap"
)

// Service applies validation and sanitization in front of a repository and
// announces successful writes on the event bus.
type Service struct {
	repo ProductRepository
	bus  EventBus.Bus
}

// NewService creates a catalog service. bus may be nil.
func NewService(repo ProductRepository, bus EventBus.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(items), nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	p, err := Validate(in)
	if err != nil {
		return domain.Product{}, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.publish(TopicProductCreated, created)
	return created, nil
}

// Replace validates in and overwrites the stored product. A payload that
// fails validation is rejected before the id is looked up.
func (s *Service) Replace(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	p, err := Validate(in)
	if err != nil {
		return domain.Product{}, err
	}
	updated, err := s.repo.Replace(ctx, id, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.publish(TopicProductReplaced, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(TopicProductDeleted, id)
	return nil
}

// Referenced returns the set of filenames used by at least one product.
func (s *Service) Referenced(ctx context.Context) (map[string]struct{}, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return referencedImages(items), nil
}

func referencedImages(items []domain.Product) map[string]struct{} {
	refs := make(map[string]struct{})
	for _, p := range items {
		for _, img := range p.Images {
			if img != "" {
				refs[img] = struct{}{}
			}
		}
	}
	return refs
}

func (s *Service) publish(topic string, arg interface{}) {
	if s.bus == nil {
		return
	}
	if !s.bus.HasCallback(topic) {
		zap.L().Debug("no catalog event subscribers", zap.String("topic", topic))
		return
	}
	s.bus.Publish(topic, arg)
}
