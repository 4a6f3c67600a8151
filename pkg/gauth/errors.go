package gauth

import (
	"errors"
	"fmt"
)

// Kind is the closed taxonomy of domain error conditions.
type Kind int

const (
	// KindUnknown covers transport failures and any status outside an
	// operation's table. Its message varies with the cause.
	KindUnknown Kind = iota
	// KindInternalServerError indicates a server-side failure.
	KindInternalServerError
	// KindPasswordMismatch indicates the supplied password was wrong.
	KindPasswordMismatch
	// KindNotFoundUserByEmail indicates no user exists for the email.
	KindNotFoundUserByEmail
	// KindClientSecretMismatch indicates the client secret was wrong.
	KindClientSecretMismatch
	// KindTokenExpiredOrInvalid indicates the token expired or was tampered with.
	KindTokenExpiredOrInvalid
	// KindNotFoundServiceByClientID indicates no service exists for the client ID.
	KindNotFoundServiceByClientID
	// KindNotFoundUserByToken indicates no user exists for the token.
	KindNotFoundUserByToken
	// KindNotFoundRegisteredService indicates no registered service was found.
	KindNotFoundRegisteredService
)

// String makes Kind satisfy fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindInternalServerError:
		return "InternalServerError"
	case KindPasswordMismatch:
		return "PasswordMismatch"
	case KindNotFoundUserByEmail:
		return "NotFoundUserByEmail"
	case KindClientSecretMismatch:
		return "ClientSecretMismatch"
	case KindTokenExpiredOrInvalid:
		return "TokenExpiredOrInvalid"
	case KindNotFoundServiceByClientID:
		return "NotFoundServiceByClientId"
	case KindNotFoundUserByToken:
		return "NotFoundUserByToken"
	case KindNotFoundRegisteredService:
		return "NotFoundRegisteredService"
	default:
		return "Unknown"
	}
}

// kindMessages holds the fixed human-readable message per kind.
var kindMessages = map[Kind]string{
	KindInternalServerError:       "the server ran into a problem",
	KindPasswordMismatch:          "password does not match",
	KindNotFoundUserByEmail:       "no user found for the given email",
	KindClientSecretMismatch:      "clientSecret does not match",
	KindTokenExpiredOrInvalid:     "token has expired or been tampered with",
	KindNotFoundServiceByClientID: "no service found for the given clientId",
	KindNotFoundUserByToken:       "no user found for the given token",
	KindNotFoundRegisteredService: "no registered service found",
}

// Error is a domain error value. Every failure surfaced by this package is
// an *Error; nothing is ever thrown across the facade boundary.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Message is the fixed message for the kind, or a cause-specific
	// message when Kind is KindUnknown.
	Message string

	// cause holds the underlying error for KindUnknown transport failures.
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind == k
	}
	return false
}

func kindError(k Kind) *Error {
	return &Error{Kind: k, Message: kindMessages[k]}
}

func unknownError(message string, cause error) *Error {
	return &Error{Kind: KindUnknown, Message: message, cause: cause}
}

// statusTables maps, per operation, the small set of response statuses the
// server documents to their domain error kinds. Statuses absent from an
// operation's table classify as KindUnknown.
var statusTables = map[Operation]map[int]Kind{
	CodeExchange: {
		400: KindPasswordMismatch,
		404: KindNotFoundUserByEmail,
		500: KindInternalServerError,
	},
	TokenExchange: {
		400: KindClientSecretMismatch,
		401: KindTokenExpiredOrInvalid,
		404: KindNotFoundServiceByClientID,
		500: KindInternalServerError,
	},
	TokenRefresh: {
		401: KindTokenExpiredOrInvalid,
		404: KindNotFoundUserByToken,
		500: KindInternalServerError,
	},
	UserInfo: {
		401: KindTokenExpiredOrInvalid,
		404: KindNotFoundRegisteredService,
		500: KindInternalServerError,
	},
}

// Classify maps an operation and response status to a domain error. It is
// total: any status not in the operation's table yields KindUnknown. It is
// consulted when a response was received but its body could not be decoded
// into the expected success shape.
func Classify(op Operation, status int) *Error {
	if table, ok := statusTables[op]; ok {
		if k, ok := table[status]; ok {
			return kindError(k)
		}
	}
	return unknownError(fmt.Sprintf("unexpected status %d from %s", status, op), nil)
}
