// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

var (
	// ErrServiceUnavailable indicates the embedding or completion service is
	// unreachable or failed its liveness probe.
	ErrServiceUnavailable = errors.New("ai service unavailable")

	// ErrMalformedResponse indicates the service answered without the
	// expected text content.
	ErrMalformedResponse = errors.New("malformed ai service response")
)

// IsStartingUp reports whether an error carries the signature of a completion
// service that is still starting: an HTML body where JSON was expected. The
// raw body surfaces as "<!DOCTYPE" when passed through verbatim, or as a JSON
// decode complaint about '<' when a client library decoded it first.
func IsStartingUp(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "<!DOCTYPE") || strings.Contains(msg, "invalid character '<'")
}
