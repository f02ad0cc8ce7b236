package lastpass

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInstalled is returned when the lpass executable can't be located.
	ErrNotInstalled = errors.New("lpass doesn't seem to be installed")

	// ErrNotLoggedIn is returned when `lpass ls` prints nothing.
	ErrNotLoggedIn = errors.New("lpass returned an empty vault listing, is the session logged in?")

	// ErrNoRecords is returned when `lpass show` matched no account.
	ErrNoRecords = errors.New("no records returned")

	// ErrMalformedOutput is returned when `lpass show --json` output can't be decoded.
	ErrMalformedOutput = errors.New("malformed lpass output")

	// ErrTimeout is returned when an lpass invocation was killed after the configured timeout.
	ErrTimeout = errors.New("lpass timed out")
)

// PreconditionError reports that lpass can't be used at all.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// LookupError reports a failed secret lookup. Group and Alias are filled in
// by the inventory builder, Identifier by the resolver.
type LookupError struct {
	Group      string
	Alias      string
	Identifier string
	Err        error
}

func (e *LookupError) Error() string {
	if e.Alias == "" {
		return fmt.Sprintf("lookup of %q: %v", e.Identifier, e.Err)
	}
	return fmt.Sprintf("there was an issue with %s: %s (group %s): %v", e.Alias, e.Identifier, e.Group, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
