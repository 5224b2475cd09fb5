package repository

import (
	"context"
	"errors"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
)

// FanoutPublisher forwards every event to each configured sink. Publish
// attempts every sink even when an earlier one fails and returns the joined
// errors.
type FanoutPublisher struct {
	sinks []drepo.EventPublisher
}

var _ drepo.EventPublisher = (*FanoutPublisher)(nil)

// NewFanoutPublisher combines sinks into one publisher. Nil sinks are skipped.
func NewFanoutPublisher(sinks ...drepo.EventPublisher) *FanoutPublisher {
	p := &FanoutPublisher{}
	for _, s := range sinks {
		if s != nil {
			p.sinks = append(p.sinks, s)
		}
	}
	return p
}

func (p *FanoutPublisher) Publish(ctx context.Context, ev *models.MarketEvent) error {
	var errs []error
	for _, s := range p.sinks {
		if err := s.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *FanoutPublisher) Close() error {
	var errs []error
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
