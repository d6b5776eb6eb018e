package menu

import "fmt"

// ReturnLabel is the text of the reserved return entry, always the last
// item of a child list.
const ReturnLabel = "Return"

// Config holds the static menu layout.
type Config struct {
	RootCount  int
	ChildCount int      // includes the reserved Return entry (last index)
	RootLabels []string // optional; must match RootCount when set
	ChildLabel string   // optional format with parent and item numbers, e.g. "Subitem %d-%d"
}

// Model is the static two-level menu description: item counts at root and
// child level, plus display labels. Counts are fixed at construction; the
// reserved Return entry is the last child index, an invariant the whole
// navigation layer relies on.
type Model struct {
	rootCount  int
	childCount int
	rootLabels []string
	childLabel string
}

// New validates the layout and builds the model. At least one root item
// and two child items (one real item plus Return) are required; anything
// less leaves the wraparound arithmetic undefined and is refused.
func New(cfg Config) (*Model, error) {
	if cfg.RootCount < 1 {
		return nil, fmt.Errorf("root_count must be >= 1, got %d", cfg.RootCount)
	}
	if cfg.ChildCount < 2 {
		return nil, fmt.Errorf("child_count must be >= 2 (one item plus Return), got %d", cfg.ChildCount)
	}
	if len(cfg.RootLabels) > 0 && len(cfg.RootLabels) != cfg.RootCount {
		return nil, fmt.Errorf("root_labels has %d entries, want %d", len(cfg.RootLabels), cfg.RootCount)
	}

	childLabel := cfg.ChildLabel
	if childLabel == "" {
		childLabel = "Subitem %d-%d"
	}

	return &Model{
		rootCount:  cfg.RootCount,
		childCount: cfg.ChildCount,
		rootLabels: cfg.RootLabels,
		childLabel: childLabel,
	}, nil
}

// RootCount returns the number of root items.
func (m *Model) RootCount() int { return m.rootCount }

// ChildCount returns the number of child items, Return included.
func (m *Model) ChildCount() int { return m.childCount }

// ReturnIndex returns the child index of the reserved Return entry.
func (m *Model) ReturnIndex() int { return m.childCount - 1 }

// RootLabel returns the display label of a root item.
func (m *Model) RootLabel(i int) string {
	if len(m.rootLabels) > 0 {
		return m.rootLabels[i]
	}
	return fmt.Sprintf("Item %d", i+1)
}

// ChildLabel returns the display label of a child item under the given
// root item. The last index is always the Return entry.
func (m *Model) ChildLabel(parent, i int) string {
	if i == m.ReturnIndex() {
		return ReturnLabel
	}
	return fmt.Sprintf(m.childLabel, parent+1, i+1)
}

// RootLabels returns the labels of all root items.
func (m *Model) RootLabels() []string {
	labels := make([]string, m.rootCount)
	for i := range labels {
		labels[i] = m.RootLabel(i)
	}
	return labels
}

// ChildLabels returns the labels of all child items under the given root
// item.
func (m *Model) ChildLabels(parent int) []string {
	labels := make([]string, m.childCount)
	for i := range labels {
		labels[i] = m.ChildLabel(parent, i)
	}
	return labels
}
