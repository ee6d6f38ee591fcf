// Package sources implements parsers for the formats proxy list feeds
// come in.
package sources

import (
	"github.com/juju/errors"

	"proxographer/proxlib"
)

// FromName returns a source for the given format name. An empty name
// picks the plain text format.
func FromName(name string) (proxlib.Source, error) {
	switch name {
	case "", NamePlain:
		return NewPlain(), nil
	case NameHTML:
		return NewHTML(), nil
	}

	return nil, errors.Errorf("unsupported proxy list format: %s", name)
}
