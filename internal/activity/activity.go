// Package activity is the catalog of practice activities. Each activity binds
// a question generator to a difficulty policy.
package activity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

// ErrUnknownActivity is returned for an id that is not in the catalog or is
// disabled.
var ErrUnknownActivity = errors.New("unknown activity")

// Activity is one practice activity.
type Activity struct {
	ID        string
	Name      string
	Topic     Topic
	Grade     int
	MaxTier   int
	Policy    difficulty.Policy
	Generator problemgen.Generator

	// Ties states how highest/lowest questions treat a shared extreme. Empty
	// for activities that never ask one.
	Ties problemgen.TiePolicy

	Disabled bool
}

// Controller returns the difficulty controller for the activity.
func (a Activity) Controller() *difficulty.Controller {
	return &difficulty.Controller{MaxTier: a.MaxTier, Policy: a.Policy}
}

// Catalog holds activities in display order with an id index.
type Catalog struct {
	activities []Activity
	byID       map[string]int
}

// NewCatalog builds a catalog and validates every entry.
func NewCatalog(activities []Activity) (*Catalog, error) {
	c := &Catalog{
		activities: slices.Clone(activities),
		byID:       make(map[string]int, len(activities)),
	}
	for i, a := range c.activities {
		if err := validate(a); err != nil {
			return nil, err
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("activity %q: duplicate id", a.ID)
		}
		c.byID[a.ID] = i
	}
	return c, nil
}

func validate(a Activity) error {
	switch {
	case a.ID == "":
		return errors.New("activity with empty id")
	case a.Name == "":
		return fmt.Errorf("activity %q: empty name", a.ID)
	case a.Generator == nil:
		return fmt.Errorf("activity %q: no generator", a.ID)
	case a.MaxTier < 1 || a.MaxTier > a.Generator.MaxTier():
		return fmt.Errorf("activity %q: max tier %d outside generator range 1-%d", a.ID, a.MaxTier, a.Generator.MaxTier())
	case a.Policy == nil:
		return fmt.Errorf("activity %q: no difficulty policy", a.ID)
	}
	if err := a.Policy.Validate(); err != nil {
		return fmt.Errorf("activity %q: %w", a.ID, err)
	}
	return nil
}

// All returns the enabled activities in display order.
func (c *Catalog) All() []Activity {
	out := make([]Activity, 0, len(c.activities))
	for _, a := range c.activities {
		if !a.Disabled {
			out = append(out, a)
		}
	}
	return out
}

// Get returns an enabled activity by id.
func (c *Catalog) Get(id string) (Activity, error) {
	i, ok := c.byID[id]
	if !ok || c.activities[i].Disabled {
		return Activity{}, fmt.Errorf("%w: %q", ErrUnknownActivity, id)
	}
	return c.activities[i], nil
}

// Topics returns the topics that have at least one enabled activity, in
// display order.
func (c *Catalog) Topics() []Topic {
	groups := c.ByTopic()
	var out []Topic
	for _, t := range AllTopics() {
		if len(groups[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// ByTopic groups enabled activities by topic, each group sorted by grade and
// then catalog order.
func (c *Catalog) ByTopic() map[Topic][]Activity {
	groups := make(map[Topic][]Activity)
	for _, a := range c.All() {
		groups[a.Topic] = append(groups[a.Topic], a)
	}
	for _, g := range groups {
		slices.SortStableFunc(g, func(x, y Activity) int { return x.Grade - y.Grade })
	}
	return groups
}

// Override changes one activity. A nil Policy keeps the current one.
type Override struct {
	Disabled bool
	Policy   difficulty.Policy
}

// ApplyOverrides applies per-activity overrides. Unknown ids and invalid
// policies are errors, and on error the catalog is left unchanged.
func (c *Catalog) ApplyOverrides(overrides map[string]Override) error {
	next := slices.Clone(c.activities)
	for id, o := range overrides {
		i, ok := c.byID[id]
		if !ok {
			return fmt.Errorf("override: %w: %q", ErrUnknownActivity, id)
		}
		next[i].Disabled = o.Disabled
		if o.Policy != nil {
			if err := o.Policy.Validate(); err != nil {
				return fmt.Errorf("override %q: %w", id, err)
			}
			next[i].Policy = o.Policy
		}
	}
	c.activities = next
	return nil
}
