package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/luxemarket/storefront-backend/pkg/clock"
	"github.com/luxemarket/storefront-backend/pkg/errors"
)

func TestApplyRejectsBlankCode(t *testing.T) {
	svc, err := NewService(clock.Instant{}, time.Second)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	for _, code := range []string{"", "   "} {
		appErr := errors.As(svc.Apply(context.Background(), code))
		if appErr.Code() != errors.CodeValidation {
			t.Fatalf("Apply(%q) code = %v, want CodeValidation", code, appErr.Code())
		}
		if appErr.Message() != "please enter a coupon code" {
			t.Errorf("Apply(%q) message = %q", code, appErr.Message())
		}
	}
}

func TestApplyRejectsEveryCode(t *testing.T) {
	svc, err := NewService(clock.Instant{}, time.Second)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	for _, code := range []string{"SAVE10", "WELCOME", "luxe-2024"} {
		appErr := errors.As(svc.Apply(context.Background(), code))
		if appErr.Message() != "Invalid or expired coupon code" {
			t.Errorf("Apply(%q) message = %q, want the uniform rejection", code, appErr.Message())
		}
	}
}
