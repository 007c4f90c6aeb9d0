package relations

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for relationship fetches.
var (
	// ErrEmptyPlayerID indicates a fetch was requested without a player id.
	ErrEmptyPlayerID = errors.New("relations: player ID is empty")

	// ErrEmptyBaseURL indicates the client was built without a backend URL.
	ErrEmptyBaseURL = errors.New("relations: backend URL is empty")

	// ErrUnexpectedStatus indicates the backend answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("relations: unexpected status")

	// ErrPlayerNotFound indicates the backend does not know the player (404).
	ErrPlayerNotFound = errors.New("relations: player not found")

	// ErrMalformedResponse indicates the body is not a JSON object.
	ErrMalformedResponse = errors.New("relations: malformed response")
)

// StatusError carries the status code of a failed relationship fetch.
type StatusError struct {
	PlayerID string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relations: player %s: status %d %s", e.PlayerID, e.Code, http.StatusText(e.Code))
}

// Is matches ErrUnexpectedStatus for every StatusError and ErrPlayerNotFound for 404.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return true
	case ErrPlayerNotFound:
		return e.Code == http.StatusNotFound
	default:
		return false
	}
}
