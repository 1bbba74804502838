package types

import (
	"net/url"
	"path"
	"strings"
)

// ResolveRef resolves a reference string against a base URI.
// An absolute reference is used directly. Otherwise the base is
// cloned: a rooted reference path replaces the base path, a
// relative one is joined to the base path's directory, and either
// way the result is cleaned. The fragment is taken from the
// reference (empty if absent).
func ResolveRef(base *url.URL, ref string) (*url.URL, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	if r.IsAbs() || base == nil {
		return r, nil
	}

	u := *base
	switch {
	case r.Path == "":
		// Fragment-only reference; keep the base path.
	case strings.HasPrefix(r.Path, "/"):
		u.Path = path.Clean(r.Path)
	default:
		u.Path = path.Clean(path.Dir(u.Path) + "/" + r.Path)
	}
	u.Fragment = r.Fragment
	u.RawFragment = ""
	return &u, nil
}
