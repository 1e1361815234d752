package goSession

import (
	"context"
	"errors"
	"net/http"

	"github.com/MrEthical07/goSession/api"
	"github.com/MrEthical07/goSession/storage"
)

// Builder defines a public type used by goSession APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	storage    storage.Store
	httpClient *http.Client
	auditSink  AuditSink

	built bool
}

// New starts a builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage sets the persistence backend for session state.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.storage = store
	return b
}

// WithHTTPClient overrides the transport used for backend requests.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink installs the sink that receives audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles counter collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the login latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build assembles the store. The store starts in the loading state; call
// [Store.Hydrate] to restore persisted session state and settle it. A
// builder can be used once.
func (b *Builder) Build() (*Store, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.storage == nil {
		return nil, errors.New("storage backend required")
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.RequestTimeout}
	}

	store := &Store{
		config:  cfg,
		storage: b.storage,
		loading: true,
	}

	client := api.NewClient(api.Config{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: httpClient,
		TokenSource: func(ctx context.Context) string {
			return store.Snapshot().Token
		},
	})
	client.SetUnauthorizedHandler(func() {
		store.Logout(LogoutUnauthorized)
	})

	store.api = client
	store.client = client
	store.metrics = NewMetrics(cfg.Metrics)
	store.audit = newAuditDispatcher(cfg.Audit, b.auditSink)

	b.built = true

	return store, nil
}
