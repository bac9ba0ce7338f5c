// Package coupons implements the storefront's coupon form. The demo
// store has no live promotions, so every well-formed code is rejected
// after a simulated lookup delay.
package coupons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/luxemarket/storefront-backend/pkg/clock"
	"github.com/luxemarket/storefront-backend/pkg/errors"
)

// Service validates coupon codes.
type Service interface {
	Apply(ctx context.Context, code string) error
}

type service struct {
	sleeper clock.Sleeper
	delay   time.Duration
}

// NewService builds the coupon service.
func NewService(sleeper clock.Sleeper, delay time.Duration) (Service, error) {
	if sleeper == nil {
		return nil, fmt.Errorf("sleeper is required")
	}
	return &service{sleeper: sleeper, delay: delay}, nil
}

// Apply checks a coupon code. Blank codes fail fast; anything else is
// rejected after the lookup delay.
func (s *service) Apply(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New(errors.CodeValidation, "please enter a coupon code")
	}
	if err := s.sleeper.Sleep(ctx, s.delay); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "coupon lookup interrupted")
	}
	return errors.New(errors.CodeValidation, "Invalid or expired coupon code")
}
