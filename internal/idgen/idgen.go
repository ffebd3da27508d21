// Package idgen produces the fixed-width generated identifiers used as
// primary keys across the registry (INST_0001, PARC_0000007, ...).
package idgen

import (
	"fmt"
)

// Digit width of the numeric suffix, per entity prefix.
var widths = map[string]int{
	"INST": 4,
	"DOMA": 2,
	"COMP": 4,
	"MENT": 6,
	"PARC": 7,
	"CYCL": 1,
	"NIVE": 2,
	"SEME": 2,
	"SESS": 1,
	"TYPE": 2,
	"ANNE": 4,
	"MODE": 3,
}

// ConfigError reports a prefix with no configured width. It is fatal: it
// can only come from a programming mistake, never from source data.
type ConfigError struct {
	Prefix string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("idgen: unknown identifier prefix %q", e.Prefix)
}

// OverflowError reports an index whose decimal form no longer fits the
// configured width. It is fatal for the entity type being imported.
type OverflowError struct {
	Prefix string
	Index  int
	Width  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("idgen: index %d overflows width %d for prefix %s", e.Index, e.Width, e.Prefix)
}

// Generate renders PREFIX_<index> with the prefix's configured zero-padded
// width. Width 1 renders a plain decimal digit.
func Generate(prefix string, index int) (string, error) {
	width, ok := widths[prefix]
	if !ok {
		return "", &ConfigError{Prefix: prefix}
	}

	var suffix string
	if width == 1 {
		suffix = fmt.Sprintf("%d", index)
	} else {
		suffix = fmt.Sprintf("%0*d", width, index)
	}

	if len(suffix) > width {
		return "", &OverflowError{Prefix: prefix, Index: index, Width: width}
	}

	return prefix + "_" + suffix, nil
}

// Counter allocates successive identifiers for one entity type within a
// single import run. It is not durable: callers seed it from the number of
// entities already persisted so re-imports never recycle a suffix.
type Counter struct {
	prefix string
	next   int
}

// NewCounter returns a counter whose first allocation is seeded+1.
func NewCounter(prefix string, seeded int) *Counter {
	return &Counter{prefix: prefix, next: seeded}
}

// Next allocates the next identifier.
func (c *Counter) Next() (string, error) {
	id, err := Generate(c.prefix, c.next+1)
	if err != nil {
		return "", err
	}
	c.next++
	return id, nil
}

// Allocated reports how many identifiers exist for the prefix, seeded ones
// included.
func (c *Counter) Allocated() int {
	return c.next
}
