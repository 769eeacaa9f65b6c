// Package validation provides the validated identifiers accepted by the
// repository operations.
//
// RemoteURL and RefName can only be obtained through ParseRemoteURL and
// ParseRefName. Their zero values are invalid and are rejected by every
// operation that takes them, so no git process is ever started with an
// unchecked remote address or reference name.
package validation
