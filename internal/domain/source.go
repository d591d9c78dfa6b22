package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// SourceKind selects where the tool database is read from.
type SourceKind string

const (
	SourceLocal  SourceKind = "local"
	SourceOnline SourceKind = "online"
)

// ParseSourceKind accepts "local", "online" and the alias "remote".
func ParseSourceKind(raw string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SourceLocal):
		return SourceLocal, nil
	case string(SourceOnline), "remote":
		return SourceOnline, nil
	default:
		return "", fmt.Errorf("%w: source must be local or online, got %q", ErrInvalidSource, raw)
	}
}

// Label is the menu text for the source.
func (k SourceKind) Label() string {
	switch k {
	case SourceLocal:
		return "Local"
	case SourceOnline:
		return "Online"
	default:
		return string(k)
	}
}

// Source is a concrete location: a file path for local, a URL for online.
type Source struct {
	Kind     SourceKind
	Location string
}

func LocalSource(path string) Source {
	return Source{Kind: SourceLocal, Location: path}
}

func RemoteSource(rawURL string) Source {
	return Source{Kind: SourceOnline, Location: rawURL}
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.Location)
}

func (s Source) Validate() error {
	location := strings.TrimSpace(s.Location)
	switch s.Kind {
	case SourceLocal:
		if location == "" {
			return fmt.Errorf("%w: local path is required", ErrInvalidSource)
		}
	case SourceOnline:
		if location == "" {
			return fmt.Errorf("%w: remote url is required", ErrInvalidSource)
		}
		parsed, err := url.Parse(location)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%w: remote url must be http or https", ErrInvalidSource)
		}
		if parsed.Host == "" {
			return fmt.Errorf("%w: remote url host is required", ErrInvalidSource)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSource, s.Kind)
	}
	return nil
}

// SourceSet resolves a kind to its configured location.
type SourceSet struct {
	LocalPath string
	RemoteURL string
}

func (s SourceSet) Resolve(kind SourceKind) Source {
	if kind == SourceLocal {
		return LocalSource(s.LocalPath)
	}
	return RemoteSource(s.RemoteURL)
}
