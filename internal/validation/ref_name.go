package validation

import (
	"strings"

	gberrors "gitbind.dev/gitbind/internal/errors"
)

const (
	invalidRefChars = " ~^:\\"
	invalidRefStart = "-"
	invalidRefEnd   = "."
)

// invalidRefSequences can appear nowhere in a reference name
var invalidRefSequences = []string{"/.", "@{", ".."}

// RefName is a branch, tag or other reference name that passed validation.
type RefName struct {
	value string
}

// ParseRefName validates name against a conservative subset of git's
// reference naming rules. Names that pass here can still be refused by git
// itself; that failure is reported as a GitCommandError.
func ParseRefName(name string) (RefName, error) {
	if !isValidRefName(name) {
		return RefName{}, gberrors.ErrInvalidRefName
	}
	return RefName{value: name}, nil
}

// MustParseRefName is like ParseRefName but panics on invalid input.
func MustParseRefName(name string) RefName {
	r, err := ParseRefName(name)
	if err != nil {
		panic(err)
	}
	return r
}

func isValidRefName(name string) bool {
	if name == "" || name == "@" {
		return false
	}
	if strings.HasPrefix(name, invalidRefStart) || strings.HasSuffix(name, invalidRefEnd) {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c == 0x7f || strings.IndexByte(invalidRefChars, c) >= 0 {
			return false
		}
	}
	for _, seq := range invalidRefSequences {
		if strings.Contains(name, seq) {
			return false
		}
	}
	return true
}

// String returns the reference name as given to ParseRefName.
func (r RefName) String() string {
	return r.value
}

// IsZero reports whether r was obtained without ParseRefName.
func (r RefName) IsZero() bool {
	return r.value == ""
}
