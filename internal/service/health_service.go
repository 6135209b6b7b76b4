package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Checker is a dependency that must be reachable for the service to be ready.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type HealthService interface {
	Ready(ctx context.Context) error
}

type healthService struct {
	checkers []Checker
}

func NewHealthService(db *gorm.DB) HealthService {
	return &healthService{checkers: []Checker{&databaseChecker{db: db}}}
}

func (s *healthService) Ready(ctx context.Context) error {
	for _, c := range s.checkers {
		if err := c.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	return nil
}

type databaseChecker struct {
	db *gorm.DB
}

func (c *databaseChecker) Name() string { return "postgres" }

func (c *databaseChecker) Check(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
