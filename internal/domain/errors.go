package domain

import "errors"

var (
	// ErrInvalidBarcode is returned when a barcode fails validation before
	// any source is queried
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrPrimaryQuery is returned when the primary warehouse query fails
	// (network, auth, or an explicit error code from the statement service)
	ErrPrimaryQuery = errors.New("primary source query failed")

	// ErrPrimaryDecode is returned when a primary-source row is present but
	// one of its serialized sub-documents cannot be decoded
	ErrPrimaryDecode = errors.New("primary source row decode failed")

	// ErrProductNotFound is returned when a source has no product for the
	// barcode; from the fallback source this is the legitimate empty result
	ErrProductNotFound = errors.New("product not found")

	// ErrFallbackFetch is returned when the fallback API request or its
	// response body fails
	ErrFallbackFetch = errors.New("fallback source fetch failed")

	// ErrResolutionFailed is returned when both sources are unreachable;
	// the caller must render an error state, never partial data
	ErrResolutionFailed = errors.New("product resolution failed")

	// ErrInsightGeneration is returned when the generation service call
	// fails; it is scoped to the insights panel only
	ErrInsightGeneration = errors.New("insight generation failed")

	// ErrProfileNotFound is returned when no onboarding profile has been
	// persisted yet
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSessionNotFound is returned when a wizard or scan session id is
	// unknown or expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionDestroyed is returned when a capture session is torn down
	// while its initialization is still in flight
	ErrSessionDestroyed = errors.New("capture session destroyed")
)
