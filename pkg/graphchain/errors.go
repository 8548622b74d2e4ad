package graphchain

import (
	"fmt"
	"strings"
)

// Error wraps a failure with the operation that produced it, an
// {Op, Err, Message} envelope in the style pkg/mythic uses throughout.
type Error struct {
	// Op is the operation that failed, e.g. "Chain.Kickoff" or
	// "NetworkFetch.Intercept".
	Op string

	// Err is the underlying sentinel or wrapped error.
	Err error

	// Message provides additional context.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error, enabling errors.Is/errors.As against
// the sentinels below.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps err with an operation name and optional message. Returns
// nil if err is nil.
func WrapError(op string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err, Message: message}
}

// Closed set of error kinds surfaced to callers (spec.md section 7).
var (
	// ErrNoInterceptors indicates a chain was built with an empty
	// interceptor list.
	ErrNoInterceptors = fmt.Errorf("request chain has no interceptors")

	// ErrCacheMiss indicates a local-only cache policy could not be
	// satisfied because the selection set was incomplete in the store.
	// Use CacheMissPath(err) to recover the field path.
	ErrCacheMiss = fmt.Errorf("cache miss")

	// ErrInvalidResponseCode indicates the HTTP response was not 2xx.
	ErrInvalidResponseCode = fmt.Errorf("invalid response code")

	// ErrNoParsedResponse indicates the chain reached its end (or an
	// interceptor that required one ran) without a parsed GraphQLResult
	// attached to the HTTPResponse.
	ErrNoParsedResponse = fmt.Errorf("no parsed response")

	// ErrAPQNotFound indicates the server replied PersistedQueryNotFound
	// to a hash-only automatic persisted query attempt.
	ErrAPQNotFound = fmt.Errorf("persisted query not found")

	// ErrTooManyRetries indicates the retry cap was exceeded.
	ErrTooManyRetries = fmt.Errorf("too many retries")

	// ErrVersionMismatch indicates the CLI version does not match the
	// pinned library version.
	ErrVersionMismatch = fmt.Errorf("version mismatch")

	// ErrMissingSchemaDownloadConfig indicates --fetch-schema was passed
	// without a schemaDownload configuration block.
	ErrMissingSchemaDownloadConfig = fmt.Errorf("missing schema download configuration")

	// errCancelled is an internal sentinel; it is never surfaced to a
	// caller's completion. No code path returns it: delivery after Cancel
	// is suppressed by the chain's cancelled state.
	errCancelled = fmt.Errorf("cancelled")
)

// CacheMissError carries the field path of a ErrCacheMiss failure.
type CacheMissError struct {
	Path string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCacheMiss, e.Path)
}

func (e *CacheMissError) Unwrap() error {
	return ErrCacheMiss
}

// InvalidResponseCodeError carries the HTTP status and raw body of an
// ErrInvalidResponseCode failure.
type InvalidResponseCodeError struct {
	Status int
	Body   []byte
}

func (e *InvalidResponseCodeError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrInvalidResponseCode, e.Status)
}

func (e *InvalidResponseCodeError) Unwrap() error {
	return ErrInvalidResponseCode
}

// TooManyRetriesError carries the retry threshold that was exceeded.
type TooManyRetriesError struct {
	Max int
}

func (e *TooManyRetriesError) Error() string {
	return fmt.Sprintf("%v: max %d", ErrTooManyRetries, e.Max)
}

func (e *TooManyRetriesError) Unwrap() error {
	return ErrTooManyRetries
}

// VersionMismatchError carries both versions involved in an
// ErrVersionMismatch failure.
type VersionMismatchError struct {
	CLIVersion     string
	LibraryVersion string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%v: cli %s, library %s", ErrVersionMismatch, e.CLIVersion, e.LibraryVersion)
}

func (e *VersionMismatchError) Unwrap() error {
	return ErrVersionMismatch
}

// GraphQLError is a single error entry from a GraphQL response envelope's
// "errors" array.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// GraphQLErrors is the typed error carried when a response envelope
// contains "errors". Per spec.md 7, this is delivered as part of a
// successful GraphQLResult when "data" is also present; it only becomes a
// completion failure if an additional error interceptor elevates it.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ge := range e {
		msgs[i] = ge.Message
	}
	return strings.Join(msgs, "; ")
}
