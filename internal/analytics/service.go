package analytics

import (
	"context"
	"time"

	"eventbook/internal/shared/constants"
	"eventbook/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cacheTTL: cacheTTL,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetStatistics(ctx context.Context) (*Statistics, error) {
	if s.cacheService == nil {
		return s.computeStatistics(ctx)
	}

	var stats Statistics
	err := s.cacheService.GetOrSet(ctx, constants.KEY_STATISTICS, s.cacheTTL,
		func() (interface{}, error) {
			return s.computeStatistics(ctx)
		}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) computeStatistics(ctx context.Context) (*Statistics, error) {
	totalEvents, err := s.repo.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	eventsThisMonth, err := s.repo.CountEventsThisMonth(ctx)
	if err != nil {
		return nil, err
	}
	totalCities, err := s.repo.CountDistinctCities(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		TotalEvents:     totalEvents,
		EventsThisMonth: eventsThisMonth,
		TotalCities:     totalCities,
		TotalCustomers:  totalCustomers,
	}, nil
}
