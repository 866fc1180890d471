package bridge

import (
	"fmt"
	"log/slog"
	"reflect"

	"duck-bridge/convert"
	"duck-bridge/options"
)

// Option configures a Registry.
type Option func(*Registry) error

// WithConfig replaces the default configuration.
func WithConfig(cfg options.Config) Option {
	return func(r *Registry) error {
		r.config = cfg
		return nil
	}
}

// WithConfigFile loads the configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(r *Registry) error {
		cfg, err := options.LoadFile(path)
		if err != nil {
			return err
		}

		r.config = cfg

		return nil
	}
}

// WithLogger sets the logger. A nil logger discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}

		r.logger = logger

		return nil
	}
}

// WithCatalog shares a catalog between registries.
func WithCatalog(cat *Catalog) Option {
	return func(r *Registry) error {
		if cat == nil {
			return fmt.Errorf("nil catalog")
		}

		r.catalog = cat

		return nil
	}
}

// WithCasters adds user conversion functions of the form
// func(S) D, func(S) (D, bool), func(S) (D, error) or func(S) (D, bool, error).
func WithCasters(fns ...any) Option {
	return func(r *Registry) error {
		casters, err := convert.NewCasters(fns...)
		if err != nil {
			return err
		}

		r.casters = casters

		return nil
	}
}

// WithShim registers the shim of an interface contract.
func WithShim(iface reflect.Type, shim Shim) Option {
	return func(r *Registry) error {
		return r.emitter.Register(iface, shim)
	}
}
