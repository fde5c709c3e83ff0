package config

import (
	"github.com/pkg/errors"
)

// StringSlice is a toml extension that lets you to specify either a string
// value (a slice with just one element) or a string slice.
type StringSlice []string

func (s *StringSlice) UnmarshalTOML(v interface{}) error {
	switch value := v.(type) {
	case string:
		*s = []string{value}
		return nil
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			str, ok := item.(string)
			if !ok {
				return errors.Errorf("unexpected slice item %v", item)
			}
			out = append(out, str)
		}
		*s = out
		return nil
	}

	return errors.New("failed to decode string (slice) field")
}
