package service

import (
	"context"
	"errors"

	"github.com/donation-inventory/api/internal/donation"
	"github.com/donation-inventory/api/internal/donation/repository"
)

var (
	ErrNotFound = repository.ErrNotFound
)

// Service exposes the donation operations used by the handler layer.
// Every call opens its own storage session and releases it before returning.
type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() *Service {
	return New(repository.NewMemoryRepo())
}

func (s *Service) withSession(ctx context.Context, fn func(repo repository.Repository) error) error {
	sess, err := s.store.Session(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

func (s *Service) List(ctx context.Context) ([]*donation.Donation, error) {
	var out []*donation.Donation
	err := s.withSession(ctx, func(repo repository.Repository) error {
		var err error
		out, err = repo.List(ctx)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int64) (*donation.Donation, error) {
	var out *donation.Donation
	err := s.withSession(ctx, func(repo repository.Repository) error {
		var err error
		out, err = repo.Get(ctx, id)
		return err
	})
	return out, err
}

func (s *Service) Create(ctx context.Context, d *donation.Donation) error {
	d.Date = donation.NormalizeDate(d.Date)
	return s.withSession(ctx, func(repo repository.Repository) error {
		return repo.Create(ctx, d)
	})
}

// Update loads the donation, merges the set fields of p and stores it.
// Concurrent updates of the same id are last-write-wins.
func (s *Service) Update(ctx context.Context, id int64, p donation.Patch) (*donation.Donation, error) {
	var out *donation.Donation
	err := s.withSession(ctx, func(repo repository.Repository) error {
		d, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if p.Empty() {
			out = d
			return nil
		}
		p.Apply(d)
		if err := repo.Save(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.withSession(ctx, func(repo repository.Repository) error {
		return repo.Delete(ctx, id)
	})
}

// Stats summarizes every stored donation.
func (s *Service) Stats(ctx context.Context) (donation.Summary, error) {
	list, err := s.List(ctx)
	if err != nil {
		return donation.Summary{}, err
	}
	return donation.Summarize(list), nil
}

// Ready reports whether the backing store answers.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// StoreName is the configured storage driver.
func (s *Service) StoreName() string {
	return s.store.Name()
}

// IsNotFound reports whether err means the donation does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
