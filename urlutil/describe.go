package urlutil

import (
	"github.com/jongio/weburl/weburl"
)

// Components is a flat, serializable view of a parsed URL. Absent optional
// components are nil so JSON and YAML output distinguish "absent" from
// "empty".
type Components struct {
	Href       string   `json:"href" yaml:"href"`
	Scheme     string   `json:"scheme" yaml:"scheme"`
	Opaque     bool     `json:"opaque" yaml:"opaque"`
	SchemeData string   `json:"schemeData,omitempty" yaml:"schemeData,omitempty"`
	Username   string   `json:"username,omitempty" yaml:"username,omitempty"`
	Password   *string  `json:"password,omitempty" yaml:"password,omitempty"`
	Host       string   `json:"host,omitempty" yaml:"host,omitempty"`
	HostKind   string   `json:"hostKind,omitempty" yaml:"hostKind,omitempty"`
	Port       *int     `json:"port,omitempty" yaml:"port,omitempty"`
	Path       string   `json:"path,omitempty" yaml:"path,omitempty"`
	Segments   []string `json:"segments,omitempty" yaml:"segments,omitempty"`
	Query      *string  `json:"query,omitempty" yaml:"query,omitempty"`
	Fragment   *string  `json:"fragment,omitempty" yaml:"fragment,omitempty"`
}

// Describe returns the components of u.
func Describe(u *weburl.URL) Components {
	c := Components{
		Href:       u.String(),
		Scheme:     u.Scheme(),
		Opaque:     u.IsOpaque(),
		SchemeData: u.SchemeData(),
		Username:   u.Username(),
		Host:       u.HostString(),
	}
	if u.IsHierarchical() {
		c.Path = u.PathString()
		c.Segments = u.Path()
	}
	if h := u.Host(); h != nil {
		c.HostKind = h.Kind().String()
	}
	if pw, ok := u.Password(); ok {
		c.Password = &pw
	}
	if port, ok := u.Port(); ok {
		c.Port = &port
	}
	if q, ok := u.Query(); ok {
		c.Query = &q
	}
	if f, ok := u.Fragment(); ok {
		c.Fragment = &f
	}
	return c
}

// Issue is a serializable form of a repaired validation error.
type Issue struct {
	Kind     string `json:"kind" yaml:"kind"`
	Position int    `json:"position" yaml:"position"`
	Message  string `json:"message" yaml:"message"`
}

// Issues converts recorded parse errors. It returns nil for no errors.
func Issues(errs []*weburl.ParseError) []Issue {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Issue, len(errs))
	for i, e := range errs {
		out[i] = Issue{Kind: e.Kind.String(), Position: e.Position, Message: e.Message}
	}
	return out
}
