package model

import (
	"github.com/pkg/errors"
)

// Platform is a contest platform we aggregate listings from
type Platform string

const (
	PlatformLeetCode   = Platform("leetcode")
	PlatformCodeforces = Platform("codeforces")
	PlatformCodeChef   = Platform("codechef")
)

// Platforms returns all supported platforms in listing order
func Platforms() []Platform {
	return []Platform{PlatformLeetCode, PlatformCodeforces, PlatformCodeChef}
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformLeetCode, PlatformCodeforces, PlatformCodeChef:
		return true
	default:
		return false
	}
}

func (p Platform) String() string {
	return string(p)
}

// ParsePlatform converts user input to a Platform.
// "codeforce" is accepted as the legacy proxy route spelling.
func ParsePlatform(s string) (Platform, error) {
	if s == "codeforce" {
		return PlatformCodeforces, nil
	}

	p := Platform(s)
	if !p.Valid() {
		return "", errors.Wrapf(ErrUnsupportedPlatform, "%q", s)
	}

	return p, nil
}
