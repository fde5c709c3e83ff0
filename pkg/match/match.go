// Package match correlates contests with solution videos by title.
//
// Video titles follow the "<free text> | <channel suffix>" convention, so
// every rule looks only at the text before the first '|'. The rules are
// tied to how each playlist author phrases titles and compare the derived
// keys with exact, case-sensitive equality.
package match

import (
	"strings"

	"github.com/mxpv/codetracker/pkg/model"
)

const (
	videoSeparator   = "|"
	contestSeparator = "("
)

// Match returns the candidates that belong to the given contest, in input order.
// It never fails: malformed titles and unknown platforms simply don't match.
func Match(platform model.Platform, contestTitle string, candidates []*model.Video) []*model.Video {
	result := make([]*model.Video, 0)

	want, ok := Normalize(platform, contestTitle)
	if !ok {
		return result
	}

	for _, video := range candidates {
		if video == nil {
			continue
		}

		got, ok := NormalizeVideo(platform, video.Title)
		if ok && got == want {
			result = append(result, video)
		}
	}

	return result
}

// Normalize derives the comparison key from a contest title.
func Normalize(platform model.Platform, contestTitle string) (string, bool) {
	switch platform {
	case model.PlatformLeetCode:
		return contestTitle, true
	case model.PlatformCodeforces, model.PlatformCodeChef:
		return contestPrefix(contestTitle), true
	default:
		return "", false
	}
}

// NormalizeVideo derives the comparison key from a video title.
// The second return value is false when the title is too short for the rule.
func NormalizeVideo(platform model.Platform, videoTitle string) (string, bool) {
	prefix := videoPrefix(videoTitle)

	switch platform {
	case model.PlatformLeetCode:
		// "LeetCode Weekly Contest 400 Solutions" -> "Weekly Contest 400"
		words := strings.Split(prefix, " ")
		if len(words) < 4 {
			return "", false
		}
		return strings.Join(words[1:4], " "), true

	case model.PlatformCodeforces:
		// "Educational Codeforces Round 176 " -> "Educational Codeforces Round 176"
		return strings.TrimSpace(prefix), true

	case model.PlatformCodeChef:
		// "CodeChef Starters 176 " -> "Starters 176"
		words := strings.Split(strings.TrimSpace(prefix), " ")
		if len(words) > 2 {
			words = words[len(words)-2:]
		}
		return strings.Join(words, " "), true

	default:
		return "", false
	}
}

func videoPrefix(title string) string {
	prefix, _, _ := strings.Cut(title, videoSeparator)
	return prefix
}

func contestPrefix(title string) string {
	prefix, _, _ := strings.Cut(title, contestSeparator)
	return strings.TrimSpace(prefix)
}
