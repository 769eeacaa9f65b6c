package validation

import (
	"regexp"

	gberrors "gitbind.dev/gitbind/internal/errors"
)

// remoteURLRegex matches git://, ssh://, http(s):// and git@host: addresses
// ending in a .git path component, optionally followed by "/" or a #ref fragment.
// Pattern from https://github.com/jonschlinkert/is-git-url
var remoteURLRegex = regexp.MustCompile(`(?:git|ssh|https?|git@[-\w.]+):(//)?(.*?)(\.git)(/?|#[-\d\w._]+?)$`)

// RemoteURL is a remote repository address that passed validation.
type RemoteURL struct {
	value string
}

// ParseRemoteURL validates value against the remote address grammar.
// Local paths, file:// and rsync:// URLs are rejected with ErrInvalidURL.
func ParseRemoteURL(value string) (RemoteURL, error) {
	if !remoteURLRegex.MatchString(value) {
		return RemoteURL{}, gberrors.ErrInvalidURL
	}
	return RemoteURL{value: value}, nil
}

// MustParseRemoteURL is like ParseRemoteURL but panics on invalid input.
// Intended for constants and tests.
func MustParseRemoteURL(value string) RemoteURL {
	u, err := ParseRemoteURL(value)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the address as given to ParseRemoteURL.
func (u RemoteURL) String() string {
	return u.value
}

// IsZero reports whether u was obtained without ParseRemoteURL.
func (u RemoteURL) IsZero() bool {
	return u.value == ""
}
