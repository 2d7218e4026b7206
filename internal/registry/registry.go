// internal/registry/registry.go
//
// Cache-backed widget registry.
//
// Context
// -------
// Page render and Ajax lookup are separate stateless requests, so the
// widget that produced a page element must be findable later.  On every
// heavy render the widget's Spec is JSON-encoded and written to the shared
// cache under "<prefix><id>", and the browser gets the signed token of id.
// The Ajax view verifies the token, reads the spec back, and rebuilds the
// filter against its own DB handle.
//
// Entries are disposable.  A miss — unknown id, expired entry, tampered
// token — is a normal outcome surfaced as ok=false, never an error; the
// client simply re-renders.  Only transport failures (e.g. Redis down)
// come back as errors.

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/select2/internal/metrics"
)

// Spec is the serialisable identity of a registered widget: everything the
// central Ajax view needs to rebuild its filter.  Pure data — no DB handle,
// no function values — so the memory and Redis backends behave identically.
type Spec struct {
	// Widget is the concrete widget type name, used in error messages.
	Widget string `json:"widget"`
	// DataView is the route name the widget renders into data-ajax--url.
	DataView string `json:"data_view"`

	// Data-source configuration (auto widgets).
	Table        string   `json:"table,omitempty"`
	Where        string   `json:"where,omitempty"`
	ValueColumn  string   `json:"value_column,omitempty"`
	LabelColumn  string   `json:"label_column,omitempty"`
	SearchFields []string `json:"search_fields,omitempty"`
	MaxResults   int      `json:"max_results,omitempty"`
}

// Registry stores widget specs under signed keys.
type Registry struct {
	store  KV
	signer *Signer
	prefix string
	ttl    time.Duration
	log    *zap.SugaredLogger
}

// New wires a Registry.  prefix namespaces cache keys so the store can be
// shared with other subsystems; ttl bounds how long a rendered page can
// keep querying before the client has to re-render.
func New(store KV, signer *Signer, prefix string, ttl time.Duration, log *zap.SugaredLogger) *Registry {
	if log == nil {
		log = zap.S()
	}
	return &Registry{store: store, signer: signer, prefix: prefix, ttl: ttl, log: log}
}

// Register stores spec and returns the signed token for the browser.
// Called on every heavy render, so failures are wrapped with the widget
// name to keep the render error actionable.
func (r *Registry) Register(ctx context.Context, spec Spec) (string, error) {
	id, err := r.signer.NewID()
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("registry: encode spec for %s: %w", spec.Widget, err)
	}
	if err := r.store.SetWithTTL(ctx, r.prefix+id, raw, r.ttl); err != nil {
		return "", fmt.Errorf("registry: store spec for %s: %w", spec.Widget, err)
	}
	metrics.RegistryWrites.Inc()

	return r.signer.Sign(id)
}

// Resolve verifies token and loads the spec.  ok=false covers tampered
// tokens, unknown ids, and expired entries alike; err is reserved for
// store transport failures.
func (r *Registry) Resolve(ctx context.Context, token string) (Spec, bool, error) {
	id, ok := r.signer.Verify(token)
	if !ok {
		// Tamper and garbage tokens look identical to a miss from the
		// outside; only the counter tells them apart.
		metrics.RegistryTamper.Inc()
		return Spec{}, false, nil
	}

	raw, err := r.store.Get(ctx, r.prefix+id)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			metrics.RegistryMisses.Inc()
			return Spec{}, false, nil
		}
		return Spec{}, false, err
	}

	var spec Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		// A corrupt entry is unrecoverable; treat as miss but log it,
		// since it hints at a prefix collision with another writer.
		r.log.Warnw("registry entry corrupt", "id", id, "err", err)
		metrics.RegistryMisses.Inc()
		return Spec{}, false, nil
	}

	metrics.RegistryHits.Inc()
	return spec, true, nil
}
