package wireguard

import "fmt"

// Kind classifies a tunnel management failure.
type Kind int

const (
	KindNotInstalled Kind = iota + 1
	KindPermissionDenied
	KindConfigInvalid
	KindInterfaceNotFound
	KindCommandFailed
	KindNetworkError
	KindPlatformNotSupported
	KindConflictingOperation
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotInstalled:
		return "NotInstalled"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindConfigInvalid:
		return "ConfigInvalid"
	case KindInterfaceNotFound:
		return "InterfaceNotFound"
	case KindCommandFailed:
		return "CommandFailed"
	case KindNetworkError:
		return "NetworkError"
	case KindPlatformNotSupported:
		return "PlatformNotSupported"
	case KindConflictingOperation:
		return "ConflictingOperation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the only error type that crosses the platform boundary.
// It supports errors.Is matching by Kind and errors.As extraction of Detail.
type Error struct {
	Kind   Kind
	Detail string
}

// Error returns a human readable message.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotInstalled:
		return "wireguard tools are not installed"
	case KindPermissionDenied:
		if e.Detail != "" {
			return "permission denied, elevated privileges required: " + e.Detail
		}
		return "permission denied, elevated privileges required"
	case KindConfigInvalid:
		return "invalid configuration: " + e.Detail
	case KindInterfaceNotFound:
		return "interface not found: " + e.Detail
	case KindCommandFailed:
		return "command failed: " + e.Detail
	case KindNetworkError:
		return "network error: " + e.Detail
	case KindPlatformNotSupported:
		return "platform not supported"
	case KindConflictingOperation:
		if e.Detail != "" {
			return "conflicting operation in progress: " + e.Detail
		}
		return "conflicting operation in progress"
	default:
		return e.Kind.String() + ": " + e.Detail
	}
}

// Is matches any *Error of the same Kind, so the sentinels below compare
// equal to errors carrying a detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors, one per taxonomy entry.
var (
	ErrNotInstalled         = &Error{Kind: KindNotInstalled}
	ErrPermissionDenied     = &Error{Kind: KindPermissionDenied}
	ErrConfigInvalid        = &Error{Kind: KindConfigInvalid}
	ErrInterfaceNotFound    = &Error{Kind: KindInterfaceNotFound}
	ErrCommandFailed        = &Error{Kind: KindCommandFailed}
	ErrNetworkError         = &Error{Kind: KindNetworkError}
	ErrPlatformNotSupported = &Error{Kind: KindPlatformNotSupported}
	ErrConflictingOperation = &Error{Kind: KindConflictingOperation}
)

// ConfigInvalid returns a KindConfigInvalid error.
func ConfigInvalid(detail string) error {
	return &Error{Kind: KindConfigInvalid, Detail: detail}
}

// InterfaceNotFound returns a KindInterfaceNotFound error for the named interface.
func InterfaceNotFound(name string) error {
	return &Error{Kind: KindInterfaceNotFound, Detail: name}
}

// CommandFailed returns a KindCommandFailed error carrying the tool's stderr.
func CommandFailed(detail string) error {
	return &Error{Kind: KindCommandFailed, Detail: detail}
}

// NetworkError returns a KindNetworkError error.
func NetworkError(detail string) error {
	return &Error{Kind: KindNetworkError, Detail: detail}
}

// PermissionDenied returns a KindPermissionDenied error with the tool's message.
func PermissionDenied(detail string) error {
	return &Error{Kind: KindPermissionDenied, Detail: detail}
}

// ConflictingOperation returns a KindConflictingOperation error naming the
// state that caused the rejection.
func ConflictingOperation(detail string) error {
	return &Error{Kind: KindConflictingOperation, Detail: detail}
}
