// Package catalog holds the static set of spending categories. The catalog
// is built once at process start and never mutated, so it is safe for
// concurrent use without locking.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

// Catalog is an ordered, immutable set of categories indexed for lookup.
type Catalog struct {
	byID       map[string]model.Category
	byName     map[string]model.Category
	byGroup    map[string][]model.Category
	categories []model.Category
}

// New builds a catalog from category definitions. IDs and names must be
// unique; group information must be present on every category.
func New(categories []model.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: catalog requires at least one category", common.ErrInvalidConfig)
	}

	c := &Catalog{
		byID:       make(map[string]model.Category, len(categories)),
		byName:     make(map[string]model.Category, len(categories)),
		byGroup:    make(map[string][]model.Category),
		categories: make([]model.Category, 0, len(categories)),
	}

	for _, cat := range categories {
		if cat.ID == "" || cat.Name == "" || cat.GroupID == "" || cat.GroupName == "" {
			return nil, fmt.Errorf("%w: category %+v is incomplete", common.ErrInvalidConfig, cat)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", common.ErrInvalidConfig, cat.ID)
		}
		nameKey := strings.ToLower(cat.Name)
		if _, dup := c.byName[nameKey]; dup {
			return nil, fmt.Errorf("%w: duplicate category name %q", common.ErrInvalidConfig, cat.Name)
		}

		c.byID[cat.ID] = cat
		c.byName[nameKey] = cat
		c.byGroup[cat.GroupName] = append(c.byGroup[cat.GroupName], cat)
		c.categories = append(c.categories, cat)
	}

	for group := range c.byGroup {
		cats := c.byGroup[group]
		sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	}

	return c, nil
}

// All returns every category in catalog order.
func (c *Catalog) All() []model.Category {
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ByID looks up a category by its stable identifier.
func (c *Catalog) ByID(id string) (*model.Category, bool) {
	cat, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &cat, true
}

// MatchName looks up a category by display name, case-insensitively. The
// classification backend's spelling is never trusted without this check.
func (c *Catalog) MatchName(name string) (*model.Category, bool) {
	cat, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return &cat, true
}

// ByGroup returns the categories of one spending group, sorted by name.
func (c *Catalog) ByGroup(groupName string) ([]model.Category, error) {
	cats, ok := c.byGroup[groupName]
	if !ok {
		return nil, fmt.Errorf("%w: category group %q", common.ErrNotFound, groupName)
	}
	out := make([]model.Category, len(cats))
	copy(out, cats)
	return out, nil
}

// Grouped returns all categories keyed by group name. Categories within a
// group are sorted alphabetically; use GroupNames for alphabetical group
// iteration.
func (c *Catalog) Grouped() map[string][]model.Category {
	out := make(map[string][]model.Category, len(c.byGroup))
	for group, cats := range c.byGroup {
		copied := make([]model.Category, len(cats))
		copy(copied, cats)
		out[group] = copied
	}
	return out
}

// GroupNames returns every group name in alphabetical order.
func (c *Catalog) GroupNames() []string {
	names := make([]string, 0, len(c.byGroup))
	for group := range c.byGroup {
		names = append(names, group)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of categories in the catalog.
func (c *Catalog) Size() int {
	return len(c.categories)
}
