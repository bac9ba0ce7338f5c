// Package theme keeps the storefront's display preference, persisted
// under its own snapshot namespace so it survives restarts.
package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/errors"
)

// SnapshotKey is the persistence namespace for the theme preference.
const SnapshotKey = "theme-storage"

type snapshotStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) (bool, error)
}

type snapshot struct {
	Theme enums.Theme `json:"theme"`
}

// Preference holds the current theme. The default is light.
type Preference struct {
	mu      sync.Mutex
	current enums.Theme
	store   snapshotStore
}

// NewPreference rehydrates the persisted theme, falling back to light.
func NewPreference(ctx context.Context, store snapshotStore) (*Preference, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}

	p := &Preference{current: enums.ThemeLight, store: store}

	var persisted snapshot
	found, err := store.Load(ctx, SnapshotKey, &persisted)
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate theme: %w", err)
	}
	if found && persisted.Theme.IsValid() {
		p.current = persisted.Theme
	}
	return p, nil
}

// Current returns the active theme.
func (p *Preference) Current() enums.Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Set switches to the given theme and persists it.
func (p *Preference) Set(ctx context.Context, t enums.Theme) error {
	if !t.IsValid() {
		return errors.New(errors.CodeValidation, fmt.Sprintf("unknown theme %q", t))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Save(ctx, SnapshotKey, snapshot{Theme: t}); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to persist theme")
	}
	p.current = t
	return nil
}

// Toggle flips between light and dark and persists the result.
func (p *Preference) Toggle(ctx context.Context) (enums.Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := enums.ThemeLight
	if p.current == enums.ThemeLight {
		next = enums.ThemeDark
	}
	if err := p.store.Save(ctx, SnapshotKey, snapshot{Theme: next}); err != nil {
		return p.current, errors.Wrap(errors.CodeInternal, err, "failed to persist theme")
	}
	p.current = next
	return next, nil
}
