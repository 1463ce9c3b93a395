package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Op indicates which registry operation the error occurred in
type Op string

const (
	OpInit     Op = "init"     // registry initialization
	OpScan     Op = "scan"     // resource discovery
	OpDecode   Op = "decode"   // decoding a resource into an asset
	OpParse    Op = "parse"    // parsing a definition document
	OpLookup   Op = "lookup"   // get by name
	OpRefresh  Op = "refresh"  // per-tick reconciliation
	OpShutdown Op = "shutdown" // teardown and audit
	OpWatch    Op = "watch"    // change detection
	OpConfig   Op = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindDuplicateName   Kind = "duplicate_name"
	KindDecodeFailed    Kind = "decode_failed"
	KindInvalidDocument Kind = "invalid_document"
	KindInvalidState    Kind = "invalid_state"
	KindClosed          Kind = "closed"
	KindIO              Kind = "io"
)

// Error is the structured error type used throughout the registry
type Error struct {
	Cause    error
	Op       Op
	Kind     Kind
	Category string // asset category ("mesh", "texture", ...) when known
	Name     string // asset name when known
	Path     string // resource path when known
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Category != "" || e.Name != "" {
		b.WriteString(": ")
		if e.Category != "" {
			b.WriteString(e.Category)
		}
		if e.Name != "" {
			if e.Category != "" {
				b.WriteByte(' ')
			}
			b.WriteString(fmt.Sprintf("%q", e.Name))
		}
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		if e.Category != "" || e.Name != "" || e.Path != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Category sets the asset category
func (b *Builder) Category(c string) *Builder {
	b.err.Category = c
	return b
}

// Name sets the asset name
func (b *Builder) Name(n string) *Builder {
	b.err.Name = n
	return b
}

// Path sets the resource path
func (b *Builder) Path(p string) *Builder {
	b.err.Path = p
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error for a named asset
func NotFound(op Op, category, name string) *Error {
	return &Error{
		Op:       op,
		Kind:     KindNotFound,
		Category: category,
		Name:     name,
	}
}

// Duplicate creates a duplicate-name error. Path identifies the
// resource whose registration lost.
func Duplicate(op Op, category, name, path string) *Error {
	return &Error{
		Op:       op,
		Kind:     KindDuplicateName,
		Category: category,
		Name:     name,
		Path:     path,
		Detail:   "name already registered, keeping first",
	}
}

// DecodeFailed creates a decode error for a resource file
func DecodeFailed(category, path string, cause error) *Error {
	return &Error{
		Op:       OpDecode,
		Kind:     KindDecodeFailed,
		Category: category,
		Path:     path,
		Cause:    cause,
	}
}

// ParseFailed creates a document parsing error
func ParseFailed(path string, cause error) *Error {
	return &Error{
		Op:    OpParse,
		Kind:  KindInvalidDocument,
		Path:  path,
		Cause: cause,
	}
}

// InvalidState creates an error for an operation attempted in the
// wrong lifecycle state
func InvalidState(op Op, state string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidState,
		Detail: fmt.Sprintf("registry is %s", state),
	}
}

// Closed creates an error for use after close
func Closed(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// IO creates a filesystem error
func IO(op Op, path string, cause error) *Error {
	return &Error{
		Op:    op,
		Kind:  KindIO,
		Path:  path,
		Cause: cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(op Op, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsNotFound reports whether err is a not-found registry error
func IsNotFound(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindNotFound
}

// IsInvalidState reports whether err is a lifecycle-state error
func IsInvalidState(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindInvalidState
}
