package courier

import (
	"errors"
	"fmt"

	"github.com/courier-qa/courier-contract-tests/framework/harness"
)

// ErrNoRemoteID is returned by Fixtures.Delete for a fixture whose id was never resolved.
var ErrNoRemoteID = errors.New("courier id is not known, so the courier cannot be deleted")

// CreateErrorKind classifies a failed Fixtures.Create.
type CreateErrorKind int

const (
	// Conflict means the service already has a courier with this login (HTTP 409).
	Conflict CreateErrorKind = iota
	// InvalidSpec means the service rejected the request as incomplete (HTTP 400).
	InvalidSpec
	// CreateUnexpectedStatus means any other status except 201.
	CreateUnexpectedStatus
	// CreateTransport means the request got no HTTP response.
	CreateTransport
)

func (k CreateErrorKind) String() string {
	switch k {
	case Conflict:
		return "conflict"
	case InvalidSpec:
		return "invalid spec"
	case CreateUnexpectedStatus:
		return "unexpected status"
	case CreateTransport:
		return "transport error"
	default:
		return fmt.Sprintf("CreateErrorKind(%d)", int(k))
	}
}

// CreateError is returned by Fixtures.Create when the courier was not created.
type CreateError struct {
	Kind     CreateErrorKind
	Login    string
	Response *harness.Response // nil for CreateTransport
	Err      error             // set only for CreateTransport
}

func (e *CreateError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("creating courier %q failed (%s): %s", e.Login, e.Kind, e.Response)
	}
	return fmt.Sprintf("creating courier %q failed (%s): %s", e.Login, e.Kind, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// ResolutionErrorKind classifies a failed attempt to look up a courier's id.
type ResolutionErrorKind int

const (
	// Unauthorized means the login request was rejected with a 4xx status. The service does not
	// distinguish a wrong password from an unknown login, so neither does this.
	Unauthorized ResolutionErrorKind = iota
	// DeserializationFailed means the login succeeded but its body had no usable id.
	DeserializationFailed
	// ResolutionUnexpectedStatus means a status that is neither 200 nor 4xx.
	ResolutionUnexpectedStatus
	// ResolutionTransport means the request got no HTTP response.
	ResolutionTransport
)

func (k ResolutionErrorKind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case DeserializationFailed:
		return "deserialization failed"
	case ResolutionUnexpectedStatus:
		return "unexpected status"
	case ResolutionTransport:
		return "transport error"
	default:
		return fmt.Sprintf("ResolutionErrorKind(%d)", int(k))
	}
}

// ResolutionError is returned when a courier's id could not be determined.
type ResolutionError struct {
	Kind     ResolutionErrorKind
	Login    string
	Response *harness.Response
	Err      error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("resolving id of courier %q failed (%s)", e.Login, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Response != nil {
		msg += ": " + e.Response.String()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// DeleteError is returned by Fixtures.Delete when the service did not confirm the deletion.
type DeleteError struct {
	Login    string
	ID       string
	Response *harness.Response
	Err      error
}

func (e *DeleteError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("deleting courier %q (id %s) failed: %s", e.Login, e.ID, e.Response)
	}
	return fmt.Sprintf("deleting courier %q (id %s) failed: %s", e.Login, e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// CleanupWarning describes a fixture that Finalize could not clean up completely.
type CleanupWarning struct {
	Login string
	Err   error
}

func (w CleanupWarning) String() string {
	return fmt.Sprintf("cleanup of courier %q: %s", w.Login, w.Err)
}
