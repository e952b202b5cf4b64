package generation

import (
	"errors"
	"strings"
)

// transientMarkers are the substrings that mark an upstream failure as
// transient. Matching on error text is fragile but mirrors what upstream
// actually reports; keep every matched substring in this one list so call
// sites never change when it grows.
var transientMarkers = []string{
	"503",
	"500",
	"overloaded",
	"unavailable",
}

// IsTransient reports whether err represents a temporary upstream failure
// worth retrying. Timeouts and unusable responses are always permanent;
// everything else is classified by a case-insensitive substring match
// against transientMarkers.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrInvalidResponse) {
		return false
	}
	if errors.Is(err, ErrTransientFailure) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
