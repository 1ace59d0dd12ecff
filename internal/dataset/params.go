package dataset

import "github.com/ironsheep/photo-batch-mcp/internal/pipeline"

// Base returns the shared parameters that apply to items without an
// override.
func (l *Library) Base() pipeline.Params {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.base
}

// SetBase replaces the shared parameters. Values are clamped to their ranges.
func (l *Library) SetBase(p pipeline.Params) {
	l.mu.Lock()
	l.base = p.Clamped()
	l.mu.Unlock()
}

// UpdateBase applies the present fields of patch to the shared parameters
// and returns the result.
func (l *Library) UpdateBase(patch *pipeline.Patch) pipeline.Params {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base = patch.Resolve(l.base).Clamped()
	return l.base
}

// UpdateItem edits one item independently of the others.
//
// The first edit snapshots the current base parameters into the item's
// override; later base changes no longer reach that item. The patch is then
// merged into the override. Returns the item's resolved parameters.
func (l *Library) UpdateItem(id string, patch *pipeline.Patch) (pipeline.Params, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, err := l.lookup(id)
	if err != nil {
		return pipeline.Params{}, err
	}
	if it.override == nil {
		it.override = pipeline.Snapshot(l.base)
	}
	// Store the clamped values so the override never holds out-of-range data.
	resolved := it.override.Merge(patch).Resolve(l.base).Clamped()
	it.override = pipeline.Snapshot(resolved)
	return resolved, nil
}

// ResetItem drops an item's override so it follows the base parameters
// again.
func (l *Library) ResetItem(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, err := l.lookup(id)
	if err != nil {
		return err
	}
	it.override = nil
	return nil
}

// ResetAll drops every override and restores the default base parameters.
func (l *Library) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.base = pipeline.DefaultParams()
	for _, it := range l.items {
		it.override = nil
	}
}

// Resolve returns the parameters an item renders with: each override field
// if present, otherwise the base field.
func (l *Library) Resolve(id string) (pipeline.Params, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	it, err := l.lookup(id)
	if err != nil {
		return pipeline.Params{}, err
	}
	return it.override.Resolve(l.base).Clamped(), nil
}
