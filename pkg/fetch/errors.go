package fetch

import "fmt"

// FetchError means the artifact could not be downloaded at all: network
// failures, unexpected HTTP statuses, or empty responses.
type FetchError struct {
	Artifact string
	URL      string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch artifact %q from %s: %v", e.Artifact, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IntegrityError means the downloaded artifact does not match its declared
// checksum. The artifact is never installed when this happens.
type IntegrityError struct {
	Artifact string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("artifact %q checksum mismatch: expected %s, got %s", e.Artifact, e.Expected, e.Actual)
}

// ExtractError means the downloaded artifact passed verification but its
// archive could not be unpacked.
type ExtractError struct {
	Artifact string
	Err      error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract artifact %q: %v", e.Artifact, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}
