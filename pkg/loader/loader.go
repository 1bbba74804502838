// Package loader fetches external schema documents by URI.
//
// The validation engine consumes the [Loader] interface; this
// package also provides file and HTTP implementations and the
// scheme-dispatching default.
package loader

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"golang.org/x/net/idna"

	"github.com/schemata/draft3/pkg/value"
)

// Loader fetches the raw bytes of a schema document.
// Load is synchronous and may fail; during the schema graph walk
// its failures are swallowed and surface later as reference
// errors.
type Loader interface {
	Load(uri *url.URL) ([]byte, error)
}

// LoaderFunc adapts a function to the [Loader] interface.
type LoaderFunc func(uri *url.URL) ([]byte, error)

// Load implements [Loader].
func (f LoaderFunc) Load(uri *url.URL) ([]byte, error) {
	return f(uri)
}

// FileLoader loads file: URIs and bare paths from the local
// file system.
type FileLoader struct{}

// Load implements [Loader].
func (FileLoader) Load(uri *url.URL) ([]byte, error) {
	switch uri.Scheme {
	case "", "file":
	default:
		return nil, fmt.Errorf("loader: cannot load scheme %q from the file system", uri.Scheme)
	}
	return os.ReadFile(uri.Path)
}

// HTTPLoader loads http: and https: URIs.
// The zero value uses [http.DefaultClient].
type HTTPLoader struct {
	Client *http.Client
}

// Load implements [Loader]. The host is normalized to its ASCII
// (punycode) form before the request, so internationalized
// hostnames in schema references resolve.
func (l *HTTPLoader) Load(uri *url.URL) ([]byte, error) {
	if uri.Scheme != "http" && uri.Scheme != "https" {
		return nil, fmt.Errorf("loader: cannot load scheme %q over HTTP", uri.Scheme)
	}

	u := *uri
	if host := u.Hostname(); host != "" {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return nil, fmt.Errorf("loader: bad host %q: %w", host, err)
		}
		if port := u.Port(); port != "" {
			u.Host = ascii + ":" + port
		} else {
			u.Host = ascii
		}
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loader: GET %s: %s", &u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Default returns a loader that dispatches on the URI scheme:
// file system for file: URIs and bare paths, HTTP for http: and
// https: URIs. Any other scheme is an error.
func Default() Loader {
	httpLoader := &HTTPLoader{}
	return LoaderFunc(func(uri *url.URL) ([]byte, error) {
		switch uri.Scheme {
		case "", "file":
			return FileLoader{}.Load(uri)
		case "http", "https":
			return httpLoader.Load(uri)
		default:
			return nil, fmt.Errorf("loader: unsupported scheme %q", uri.Scheme)
		}
	})
}

// DecoderFor selects a decoder for a document by its URI
// extension: YAML for .yaml and .yml, JSON otherwise.
func DecoderFor(uri *url.URL) func([]byte) (value.Value, error) {
	switch strings.ToLower(path.Ext(uri.Path)) {
	case ".yaml", ".yml":
		return value.DecodeYAML
	default:
		return value.Decode
	}
}
