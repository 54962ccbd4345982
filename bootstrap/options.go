package bootstrap

import (
	"github.com/kbukum/streamkit/config"
	"github.com/kbukum/streamkit/logger"
)

// Option configures Init.
type Option func(*initOptions)

type initOptions struct {
	cfg        *config.DiagnosticsConfig
	logger     *logger.Logger
	loaderOpts []config.LoaderOption
}

func resolveOptions(opts []Option) *initOptions {
	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConfig supplies a pre-built configuration, skipping file loading.
func WithConfig(cfg *config.DiagnosticsConfig) Option {
	return func(o *initOptions) { o.cfg = cfg }
}

// WithLogger sets a custom logger instead of initializing one from config.
func WithLogger(l *logger.Logger) Option {
	return func(o *initOptions) { o.logger = l }
}

// WithLoaderOptions forwards options to the config loader.
func WithLoaderOptions(opts ...config.LoaderOption) Option {
	return func(o *initOptions) { o.loaderOpts = append(o.loaderOpts, opts...) }
}
