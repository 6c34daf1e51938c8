package coingecko

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tells a failed round trip apart from an unexpected payload.
type ErrorKind int

const (
	// KindTransport: the request did not complete, or the API answered with a non-2xx status.
	KindTransport ErrorKind = iota + 1
	// KindDecode: the body is not valid JSON or does not match the expected shape.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is.
var (
	ErrTransport = errors.New("coingecko: transport failure")
	ErrDecode    = errors.New("coingecko: decode failure")
)

// Error is returned by every Client method.
type Error struct {
	Kind       ErrorKind
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("coingecko ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches ErrTransport and ErrDecode by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool { return errors.Is(err, ErrDecode) }

// MissingFieldsError lists required JSON fields that were absent or null.
type MissingFieldsError struct {
	Type   string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing required fields %s", e.Type, strings.Join(e.Fields, ", "))
}
