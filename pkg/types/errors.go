// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds surfaced to the user. Stages wrap them with fmt.Errorf("%w: ...")
// so callers can classify a failure with errors.Is.
var (
	// ErrConfiguration reports bad or missing input arguments.
	ErrConfiguration = errors.New("configuration error")

	// ErrNetwork reports an HTTP transport failure or unexpected status.
	ErrNetwork = errors.New("network error")

	// ErrParse reports a malformed exclusion file or API payload.
	ErrParse = errors.New("parse error")
)
