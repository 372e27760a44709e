package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrFetchFailed    = errors.New("manifest fetch failed")
	ErrCacheIO        = errors.New("cache file access failed")
	ErrDecode         = errors.New("failed to decode")
	ErrSectionMissing = errors.New("manifest section missing")
	ErrInvalidItem    = errors.New("invalid item")
	ErrNotFound       = errors.New("record not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrSpecLoad       = errors.New("openapi spec load failed")
)

func WrapFetchFailed(url string, err error) error {
	return fmt.Errorf("%w: GET %s: %w", ErrFetchFailed, url, err)
}

func WrapCacheIO(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCacheIO, path, err)
}

func WrapDecode(what string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrDecode, what, err)
}

func WrapSectionMissing(section string) error {
	return fmt.Errorf("%w: %q", ErrSectionMissing, section)
}

func WrapInvalidItem(key, msg string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidItem, key, msg)
}

func WrapNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

func WrapInvalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

func WrapSpecLoad(spec string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSpecLoad, spec, err)
}

func WrapConfigFile(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
}
