// Package secrets resolves env:// indirections in server specs.
//
// A value that is exactly "env://KEY" names an environment variable to
// substitute at plan/sync time; the literal never lives in the unified
// config. Values merely containing the prefix mid-string are not
// references. Lookups consult the process environment first, then any
// configured .env fallback files in order.
package secrets

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
)

// Prefix marks a value as an environment variable reference.
const Prefix = "env://"

// ErrMissingSecret indicates a referenced variable is unset in strict mode.
var ErrMissingSecret = errors.New("missing secret")

// MissingSecretError reports an env:// reference whose variable is
// unset, naming the referencing field by its dotted config path.
type MissingSecretError struct {
	Key   string
	Field string
}

func (e *MissingSecretError) Error() string {
	return "secret " + e.Key + " is not set (referenced by " + e.Field + ")"
}

func (e *MissingSecretError) Unwrap() error {
	return ErrMissingSecret
}

// Resolver substitutes env:// references.
type Resolver struct {
	lookup   func(string) (string, bool)
	envFiles []string
	fallback map[string]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup replaces the process-environment lookup. Tests use this to
// avoid touching the real environment.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(r *Resolver) {
		r.lookup = fn
	}
}

// WithEnvFile adds a .env fallback file. Files are consulted in the
// order given; earlier files win. A missing file is silently skipped, a
// malformed one fails construction.
func WithEnvFile(path string) Option {
	return func(r *Resolver) {
		r.envFiles = append(r.envFiles, path)
	}
}

// New builds a Resolver. The process environment always takes
// precedence over .env fallbacks.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(r)
	}

	for _, path := range r.envFiles {
		vals, err := godotenv.Read(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "loading env file %s", path)
		}
		if r.fallback == nil {
			r.fallback = make(map[string]string, len(vals))
		}
		for k, v := range vals {
			if _, exists := r.fallback[k]; !exists {
				r.fallback[k] = v
			}
		}
	}

	return r, nil
}

// IsRef reports whether the whole value is an env:// reference.
func IsRef(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Key extracts the variable name from a reference.
func Key(ref string) string {
	return strings.TrimPrefix(ref, Prefix)
}

// Lookup returns the value for key, consulting the process environment
// first and the .env fallbacks second.
func (r *Resolver) Lookup(key string) (string, bool) {
	if v, ok := r.lookup(key); ok {
		return v, true
	}
	v, ok := r.fallback[key]
	return v, ok
}

// ResolveServer returns a copy of spec with env:// references replaced.
// The input spec is never mutated.
//
// strict controls unset-variable handling: in strict mode resolution
// aborts with a MissingSecretError; otherwise the reference is left
// untouched so previews can show it. A reference with an empty key is
// an error in both modes.
func (r *Resolver) ResolveServer(id string, spec config.ServerSpec, strict bool) (config.ServerSpec, error) {
	out := spec.Clone()
	base := "servers." + id

	var err error
	if out.Command, err = r.resolveValue(out.Command, base+".command", strict); err != nil {
		return config.ServerSpec{}, err
	}
	if out.URL, err = r.resolveValue(out.URL, base+".url", strict); err != nil {
		return config.ServerSpec{}, err
	}
	for i := range out.Args {
		if out.Args[i], err = r.resolveValue(out.Args[i], base+".args."+strconv.Itoa(i), strict); err != nil {
			return config.ServerSpec{}, err
		}
	}
	for k, v := range out.Env {
		if out.Env[k], err = r.resolveValue(v, base+".env."+k, strict); err != nil {
			return config.ServerSpec{}, err
		}
	}
	for k, v := range out.Headers {
		if out.Headers[k], err = r.resolveValue(v, base+".headers."+k, strict); err != nil {
			return config.ServerSpec{}, err
		}
	}

	return out, nil
}

func (r *Resolver) resolveValue(value, field string, strict bool) (string, error) {
	if !IsRef(value) {
		return value, nil
	}
	key := Key(value)
	if key == "" {
		return "", errors.Newf("empty secret key in %s", field)
	}
	v, ok := r.Lookup(key)
	if !ok {
		if !strict {
			return value, nil
		}
		return "", &MissingSecretError{Key: key, Field: field}
	}
	return v, nil
}
