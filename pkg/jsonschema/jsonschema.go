// Package jsonschema validates instances against JSON Schema
// draft 3 schemas.
//
// An [Engine] owns a registry of loaded schema documents and a
// loader for fetching external references. The package-level
// functions share a single process-wide engine; when validations
// run concurrently against it, enable cache persistence so the
// shared registry is not cleared mid-validation.
package jsonschema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"

	"github.com/schemata/draft3/internal/schemacache"
	"github.com/schemata/draft3/internal/validerr"
	"github.com/schemata/draft3/pkg/draft3"
	"github.com/schemata/draft3/pkg/loader"
	"github.com/schemata/draft3/pkg/types"
	"github.com/schemata/draft3/pkg/value"
)

// Schema is a parsed schema.
type Schema = types.Schema

// ValidationError is the error reported for a non-conforming
// instance. It carries the instance path and the governing schema.
type ValidationError = types.ValidationError

// SchemaError is the error reported for a structurally defective
// schema.
type SchemaError = types.SchemaError

// Options are per-validation options.
type Options struct {
	// List wraps the schema in a synthetic
	//
	//	{"type": "array", "items": {"$ref": <schema URI>}}
	//
	// so that the instance is validated as an array of
	// schema-conforming elements.
	List bool
}

// Engine validates instances against schemas.
type Engine struct {
	registry *schemacache.ConcurrentRegistry
	loader   loader.Loader
	persist  bool
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLoader sets the loader used to fetch external schema
// documents. The default dispatches on the URI scheme between
// the file system and HTTP.
func WithLoader(l loader.Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithCachePersistence controls whether the registry of loaded
// schemas survives across validations. The default is false:
// the registry is cleared after each top-level validation.
func WithCachePersistence(on bool) Option {
	return func(e *Engine) { e.persist = on }
}

// New returns a new [Engine].
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: &schemacache.ConcurrentRegistry{},
		loader:   loader.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate reports whether the instance conforms to the schema.
// A validation failure yields (false, nil); the error is reserved
// for schema errors and processing failures, which are never
// folded into a false result.
//
// The schema may be a [*Schema], a decoded [value.Value], raw
// JSON text as []byte or string, or a string URI to load the
// schema from. The instance may be a decoded [value.Value] or
// raw text.
func (e *Engine) Validate(schema, instance any, opts *Options) (bool, error) {
	err := e.ValidateStrict(schema, instance, opts)
	if err == nil {
		return true, nil
	}
	if validerr.IsValidationError(err) {
		return false, nil
	}
	return false, err
}

// ValidateStrict validates the instance against the schema.
// It returns nil on success, a [*ValidationError] carrying the
// instance path and governing schema on the first violation, and
// a [*SchemaError] if the schema itself is defective.
func (e *Engine) ValidateStrict(schema, instance any, opts *Options) error {
	if !e.persist {
		defer e.registry.Clear()
	}

	s, err := e.normalizeSchema(schema)
	if err != nil {
		return err
	}
	inst, err := e.normalizeInstance(instance)
	if err != nil {
		return err
	}

	ropts := &types.ResolveOpts{
		Vocabulary: draft3.Vocabulary,
		URI:        s.Base,
		Registry:   e.registry,
		Loader:     e.loadBytes,
	}
	if err := s.Resolve(ropts); err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("resolve schema: %w", err))
	}

	target := s
	if opts != nil && opts.List {
		target = listWrapper(s)
	}

	return target.ValidateWithOpts(inst, &types.ValidateOpts{Registry: e.registry})
}

// Schemas returns a read-only view of the registry of loaded
// schema documents, keyed by absolute URI.
func (e *Engine) Schemas() map[string]*types.Schema {
	return e.registry.All()
}

// AddSchema registers a schema under its base URI.
// Registration is idempotent: the first registration for a URI
// wins and later ones are ignored.
func (e *Engine) AddSchema(s *types.Schema) error {
	if err := e.ensureBase(s); err != nil {
		return err
	}
	e.registry.Store(registryKey(s.Base), s)
	return nil
}

// SetCachePersistence controls whether the registry survives
// across validations.
func (e *Engine) SetCachePersistence(on bool) {
	e.persist = on
}

// ClearCache discards the registry of loaded schemas.
// This is a no-op while cache persistence is on.
func (e *Engine) ClearCache() {
	if e.persist {
		return
	}
	e.registry.Clear()
}

// normalizeSchema converts any accepted schema representation
// into a registered *Schema with a base URI.
func (e *Engine) normalizeSchema(arg any) (*types.Schema, error) {
	switch arg := arg.(type) {
	case *types.Schema:
		if err := e.ensureBase(arg); err != nil {
			return nil, err
		}
		return e.registry.Store(registryKey(arg.Base), arg), nil

	case value.Value:
		data, err := value.JSON(arg)
		if err != nil {
			return nil, motmedelErrors.NewWithTrace(fmt.Errorf("encode schema value: %w", err))
		}
		return e.schemaFromBytes(data)

	case []byte:
		return e.schemaFromBytes(arg)

	case string:
		if v, err := value.Decode([]byte(arg)); err == nil {
			return e.schemaFromValue(v, digestURI([]byte(arg)))
		}
		// Not parseable as JSON: treat the string as a URI.
		u, err := e.workingURI(arg)
		if err != nil {
			return nil, motmedelErrors.NewWithTrace(fmt.Errorf("schema string is neither JSON nor a URI: %w", err))
		}
		return e.schemaFromURI(u)

	default:
		return nil, fmt.Errorf("jsonschema: cannot use %T as a schema", arg)
	}
}

// normalizeInstance converts any accepted instance representation
// into a decoded value.
func (e *Engine) normalizeInstance(arg any) (value.Value, error) {
	switch arg := arg.(type) {
	case nil:
		return value.Null{}, nil

	case value.Value:
		return arg, nil

	case []byte:
		v, err := value.Decode(arg)
		if err != nil {
			return nil, motmedelErrors.NewWithTrace(fmt.Errorf("decode instance: %w", err))
		}
		return v, nil

	case string:
		v, derr := value.Decode([]byte(arg))
		if derr == nil {
			return v, nil
		}
		// Best effort: a string that does not decode may be a URI
		// naming the instance document.
		if u, err := e.workingURI(arg); err == nil {
			if data, err := e.loadBytes(u); err == nil {
				if v, err := loader.DecoderFor(u)(data); err == nil {
					return v, nil
				}
			}
		}
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("decode instance: %w", derr))

	default:
		return nil, fmt.Errorf("jsonschema: cannot use %T as an instance", arg)
	}
}

// schemaFromBytes decodes and registers a schema given as raw text.
func (e *Engine) schemaFromBytes(data []byte) (*types.Schema, error) {
	v, err := value.Decode(data)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("decode schema: %w", err))
	}
	return e.schemaFromValue(v, digestURI(data))
}

// schemaFromValue builds and registers a schema from a decoded value.
func (e *Engine) schemaFromValue(v value.Value, base *url.URL) (*types.Schema, error) {
	s, err := types.SchemaFromValue(v, base, draft3.Vocabulary)
	if err != nil {
		return nil, err
	}
	return e.registry.Store(registryKey(s.Base), s), nil
}

// schemaFromURI loads, decodes and registers a schema document.
func (e *Engine) schemaFromURI(u *url.URL) (*types.Schema, error) {
	if s := e.registry.Lookup(registryKey(u)); s != nil {
		return s, nil
	}
	data, err := e.loadBytes(u)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("load schema %s: %w", u, err))
	}
	v, err := loader.DecoderFor(u)(data)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("decode schema %s: %w", u, err))
	}
	return e.schemaFromValue(v, u)
}

// ensureBase assigns a base URI to a schema that has none:
// the URI of an "id" keyword when present and absolute,
// otherwise a digest of the schema content.
func (e *Engine) ensureBase(s *types.Schema) error {
	if s.Base != nil {
		return nil
	}
	if pv, ok := s.LookupKeyword("id"); ok {
		if id, ok := pv.(types.PartString); ok {
			if u, err := url.Parse(string(id)); err == nil && u.IsAbs() {
				u.Fragment = ""
				s.Base = u
				return nil
			}
		}
	}
	data, err := s.MarshalJSON()
	if err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("encode schema: %w", err))
	}
	s.Base = digestURI(data)
	return nil
}

// loadBytes fetches raw bytes through the engine's loader.
func (e *Engine) loadBytes(u *url.URL) ([]byte, error) {
	return e.loader.Load(u)
}

// workingURI parses a string as a URI, resolving a relative path
// against the process working directory.
func (e *Engine) workingURI(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() {
		return u, nil
	}
	p := u.Path
	if !path.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		p = path.Join(wd, p)
	}
	return &url.URL{Scheme: "file", Path: p}, nil
}

// listWrapper builds the synthetic schema used by the List option.
func listWrapper(s *types.Schema) *types.Schema {
	ref := draft3.NewSubBuilder().AddRef(registryKey(s.Base)).Build()
	w := draft3.NewSubBuilder().AddType("array").AddItems(ref).Build()
	w.Base = s.Base
	return w
}

// registryKey returns the registry key for a URI:
// the URI with its fragment stripped.
func registryKey(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

// digestURI builds a synthetic base URI for schema text,
// keyed by a digest of the content.
func digestURI(data []byte) *url.URL {
	sum := sha256.Sum256(data)
	return &url.URL{
		Scheme: "file",
		Path:   "/" + hex.EncodeToString(sum[:]) + ".json",
	}
}

// std is the process-wide engine used by the package-level
// functions.
var std = New()

// Default returns the process-wide engine.
func Default() *Engine {
	return std
}

// Validate reports whether the instance conforms to the schema,
// using the process-wide engine.
func Validate(schema, instance any, opts *Options) (bool, error) {
	return std.Validate(schema, instance, opts)
}

// ValidateStrict validates the instance against the schema,
// using the process-wide engine.
func ValidateStrict(schema, instance any, opts *Options) error {
	return std.ValidateStrict(schema, instance, opts)
}

// AddSchema registers a schema with the process-wide engine.
func AddSchema(s *types.Schema) error {
	return std.AddSchema(s)
}

// Schemas returns the process-wide engine's registry view.
func Schemas() map[string]*types.Schema {
	return std.Schemas()
}

// SetCachePersistence controls cache persistence on the
// process-wide engine.
func SetCachePersistence(on bool) {
	std.SetCachePersistence(on)
}

// ClearCache discards the process-wide engine's registry.
// This is a no-op while cache persistence is on.
func ClearCache() {
	std.ClearCache()
}
