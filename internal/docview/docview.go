// Package docview defines the document provider: the narrow surface the
// pipeline uses to drive a remote document view. The core never embeds
// selector strings — those belong to the extraction glue that consumes
// this interface.
package docview

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout reports that a wait on element visibility expired. Discovery
// retries these within its attempt bound; per-fixture extraction lets them
// propagate as fixture-level failures.
var ErrTimeout = errors.New("timed out waiting for element")

// Element is an opaque handle to a document node. Providers hand out their
// own concrete type; callers pass it back unchanged.
type Element any

// Provider drives one stateful document session. Implementations are not
// safe for concurrent use — the pipeline runs strictly sequentially over a
// single session.
type Provider interface {
	// Navigate loads a URL, replacing the current page state.
	Navigate(ctx context.Context, url string) error
	// WaitFor blocks until an element matching the selector is visible,
	// returning it, or ErrTimeout once the bound expires.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	// QueryAll returns every element currently matching the selector.
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	// Text returns an element's rendered text.
	Text(ctx context.Context, el Element) (string, error)
	// Attribute returns the named attribute of an element, or "" when the
	// attribute is absent.
	Attribute(ctx context.Context, el Element, name string) (string, error)
	// Execute evaluates a script in the page, decoding its result into out
	// when out is non-nil.
	Execute(ctx context.Context, script string, out any) error
}
