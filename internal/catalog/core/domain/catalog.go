package domain

import "errors"

// ErrNamespaceNotFound is reported by engines that do not fail natively on an
// unknown namespace.
var ErrNamespaceNotFound = errors.New("namespace not found")

// Catalog is the set of tables visible in one namespace.
type Catalog struct {
	Namespace string
	Tables    []string // engine order
}

func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.Tables) == 0
}

func (c *Catalog) Contains(table string) bool {
	if c == nil {
		return false
	}
	for _, t := range c.Tables {
		if t == table {
			return true
		}
	}
	return false
}
