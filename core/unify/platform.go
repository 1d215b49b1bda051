package unify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlatform is returned when a platform name or key is not recognized.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies a game distribution platform.
// The set is closed: every switch over Platform in this package handles all values.
type Platform string

const (
	Steam  Platform = "Steam"
	Xbox   Platform = "Xbox"
	GOG    Platform = "GOG"
	Epic   Platform = "Epic Games"
	Amazon Platform = "Amazon Games"
)

// Platforms returns every platform in merge processing order.
func Platforms() []Platform {
	return []Platform{Steam, Xbox, GOG, Epic, Amazon}
}

// Key returns the short lower-case key used for appId/playtime maps and id prefixes.
func (p Platform) Key() string {
	switch p {
	case Steam:
		return "steam"
	case Xbox:
		return "xbox"
	case GOG:
		return "gog"
	case Epic:
		return "epic"
	case Amazon:
		return "amazon"
	default:
		return ""
	}
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	return p.Key() != ""
}

func (p Platform) String() string {
	return string(p)
}

// ParsePlatform accepts either a platform key ("epic") or its display name ("Epic Games").
// Matching is case-insensitive.
func ParsePlatform(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	for _, p := range Platforms() {
		if strings.EqualFold(s, p.Key()) || strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}
