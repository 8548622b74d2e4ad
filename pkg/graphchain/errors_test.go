package graphchain

import (
	"errors"
	"testing"
)

func TestWrapErrorReturnsNilForNilErr(t *testing.T) {
	if WrapError("Op", nil, "message") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestWrapErrorUnwrapsToSentinel(t *testing.T) {
	wrapped := WrapError("Chain.Kickoff", ErrNoInterceptors, "")
	if !errors.Is(wrapped, ErrNoInterceptors) {
		t.Fatalf("errors.Is(wrapped, ErrNoInterceptors) = false")
	}
}

func TestErrorMessageIncludesMessageWhenPresent(t *testing.T) {
	err := WrapError("Op.Call", errors.New("boom"), "extra context")
	want := "Op.Call: extra context: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorMessageOmitsMessageWhenEmpty(t *testing.T) {
	err := WrapError("Op.Call", errors.New("boom"), "")
	want := "Op.Call: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCacheMissErrorUnwrapsToErrCacheMiss(t *testing.T) {
	err := &CacheMissError{Path: "hero.name"}
	if !errors.Is(err, ErrCacheMiss) {
		t.Error("CacheMissError should unwrap to ErrCacheMiss")
	}
}

func TestInvalidResponseCodeErrorUnwraps(t *testing.T) {
	err := &InvalidResponseCodeError{Status: 500}
	if !errors.Is(err, ErrInvalidResponseCode) {
		t.Error("InvalidResponseCodeError should unwrap to ErrInvalidResponseCode")
	}
}

func TestTooManyRetriesErrorUnwraps(t *testing.T) {
	err := &TooManyRetriesError{Max: 3}
	if !errors.Is(err, ErrTooManyRetries) {
		t.Error("TooManyRetriesError should unwrap to ErrTooManyRetries")
	}
}

func TestVersionMismatchErrorUnwraps(t *testing.T) {
	err := &VersionMismatchError{CLIVersion: "1.0.0", LibraryVersion: "2.0.0"}
	if !errors.Is(err, ErrVersionMismatch) {
		t.Error("VersionMismatchError should unwrap to ErrVersionMismatch")
	}
	want := "version mismatch: cli 1.0.0, library 2.0.0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGraphQLErrorsErrorJoinsMessages(t *testing.T) {
	errs := GraphQLErrors{{Message: "first"}, {Message: "second"}}
	want := "first; second"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
