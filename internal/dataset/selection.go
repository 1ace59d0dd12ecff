package dataset

import "fmt"

// Scope chooses which items a batch operation applies to.
type Scope string

const (
	// ScopeAuto targets the selection, or every item when nothing is selected.
	ScopeAuto Scope = "auto"

	// ScopeSelected targets selected items only; it may be empty.
	ScopeSelected Scope = "sel"

	// ScopeAll targets every item.
	ScopeAll Scope = "all"

	// ScopeExceptSelected targets the items that are not selected.
	ScopeExceptSelected Scope = "exceptSel"
)

// ParseScope validates a scope name. An empty string means ScopeAuto.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeAuto:
		return ScopeAuto, nil
	case ScopeSelected, ScopeAll, ScopeExceptSelected:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("%w: unknown scope: %s", ErrInvalidArgument, s)
	}
}

// Select sets the selection state of the listed items. Unknown IDs are
// reported and nothing is changed.
func (l *Library) Select(ids []string, selected bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	targets := make([]*item, 0, len(ids))
	for _, id := range ids {
		it, err := l.lookup(id)
		if err != nil {
			return err
		}
		targets = append(targets, it)
	}
	for _, it := range targets {
		it.selected = selected
	}
	return nil
}

// SelectAll selects or deselects every item.
func (l *Library) SelectAll(selected bool) {
	l.mu.Lock()
	for _, it := range l.items {
		it.selected = selected
	}
	l.mu.Unlock()
}

// Toggle flips the selection of one item and makes it the anchor for a
// following SelectRange.
func (l *Library) Toggle(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, err := l.lookup(id)
	if err != nil {
		return false, err
	}
	l.toggleLocked(it)
	return it.selected, nil
}

// SelectRange selects every item between the anchor and id, both included.
// The range only adds to the selection and does not move the anchor. Without
// an anchor it behaves like Toggle.
func (l *Library) SelectRange(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, err := l.lookup(id)
	if err != nil {
		return err
	}
	if l.anchor < 0 {
		l.toggleLocked(it)
		return nil
	}

	a, b := l.anchor, l.indexOf(it)
	if a > b {
		a, b = b, a
	}
	for i := a; i <= b; i++ {
		l.items[i].selected = true
	}
	return nil
}

func (l *Library) toggleLocked(it *item) {
	it.selected = !it.selected
	l.anchor = l.indexOf(it)
}

// Selected returns the IDs of selected items in order.
func (l *Library) Selected() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var ids []string
	for _, it := range l.items {
		if it.selected {
			ids = append(ids, it.id)
		}
	}
	return ids
}

// Targets resolves scope to item IDs in library order.
func (l *Library) Targets(scope Scope) ([]string, error) {
	scope, err := ParseScope(string(scope))
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var all, sel, unsel []string
	for _, it := range l.items {
		all = append(all, it.id)
		if it.selected {
			sel = append(sel, it.id)
		} else {
			unsel = append(unsel, it.id)
		}
	}

	switch scope {
	case ScopeAll:
		return all, nil
	case ScopeSelected:
		return sel, nil
	case ScopeExceptSelected:
		return unsel, nil
	default:
		if len(sel) > 0 {
			return sel, nil
		}
		return all, nil
	}
}
