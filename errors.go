// errors.go -- sentinel errors for lxrhash, in the spirit of the
// upstream error file this was adapted from: a short list of package
// level sentinels that callers can compare against with errors.Is.

package lxrhash

import (
	"errors"
)

var (
	// ErrBadK is returned when K falls outside [8,34].
	ErrBadK = errors.New("lxrhash: k out of range [8,34]")

	// ErrBadPasses is returned when passes is not positive.
	ErrBadPasses = errors.New("lxrhash: passes must be positive")

	// ErrBadDigestSize is returned when D is not positive.
	ErrBadDigestSize = errors.New("lxrhash: digest size must be positive")
)
