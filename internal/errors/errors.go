// Package errors provides structured error types for the combobox and its
// demo host. These errors carry what operation failed and why.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindParse:
		return "parse error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Widget errors
func AccessorMissing(field string) error {
	return E(Op("combobox.New"), KindInvalid, fmt.Sprintf("%s accessor is required", field))
}

func InvalidPath(path string) error {
	return E(Op("combobox.Path"), KindInvalid, fmt.Sprintf("invalid field path %q", path))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Data source errors
func DataSourceNotFound(path string, err error) error {
	return E(Op("datasource.Load"), KindNotFound, fmt.Sprintf("data file %s not found", path), err)
}

func DataSourceReadFailed(path string, err error) error {
	return E(Op("datasource.Load"), KindIO, fmt.Sprintf("failed to read %s", path), err)
}

func DataSourceParseFailed(path string, err error) error {
	return E(Op("datasource.Load"), KindParse, fmt.Sprintf("failed to parse %s", path), err)
}

func UnknownFilterMode(mode string) error {
	return E(Op("datasource.ParseMode"), KindInvalid, fmt.Sprintf("unknown filter mode %q", mode))
}
