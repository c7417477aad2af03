// Package filetree contains the core domain types for building in-memory file
// trees from declarative requests.
package filetree

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/brettbedarf/filetree/internal/util"
)

// ErrNoSources is returned when contents are requested from an empty source list.
var ErrNoSources = errors.New("no content sources")

// ContentAdapter retrieves the full contents of a single file from one
// source. Instances are 1:1 with a [FileSource] and only responsible for
// that one file's data.
type ContentAdapter interface {
	// Read returns the complete contents. A nil slice with a nil error is a
	// valid empty file.
	Read(ctx context.Context) ([]byte, error)

	// Describe returns a short human readable description for logs and reports.
	Describe() string
}

// AdapterProvider is a factory for concrete [ContentAdapter] implementations
// generated from a request's source configuration.
type AdapterProvider interface {
	Adapter() ContentAdapter
}

// FileSource is a container for concrete adapter implementations that can be
// passed to the tree.
type FileSource struct {
	AdapterProvider
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"` // Lower number = higher priority
}

// ResolveContents tries sources in priority order, ties keeping their list
// order, and returns the contents of the first one that reads successfully.
// If every source fails the errors are joined.
func ResolveContents(ctx context.Context, sources []FileSource) ([]byte, error) {
	logger := util.GetLogger("ResolveContents")
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	ordered := slices.Clone(sources)
	slices.SortStableFunc(ordered, func(a, b FileSource) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	var errs []error
	for _, src := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		adapter := src.Adapter()
		data, err := adapter.Read(ctx)
		if err != nil {
			logger.Debug().Err(err).Str("source", adapter.Describe()).Msg("Source failed, trying next")
			errs = append(errs, fmt.Errorf("%s: %w", adapter.Describe(), err))
			continue
		}
		logger.Trace().Str("source", adapter.Describe()).Int("size", len(data)).Msg("Resolved contents")
		return data, nil
	}
	return nil, errors.Join(errs...)
}
