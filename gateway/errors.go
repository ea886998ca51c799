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


package gateway

import "errors"

var (
	// ErrEndpointRequired is returned when the backend endpoint is unset.
	// This is a configuration error, fatal at startup or first use.
	ErrEndpointRequired = errors.New("backend endpoint required")

	// ErrCredentialMissing is returned when no credential is registered for
	// a role. This is a configuration error, not a runtime condition.
	ErrCredentialMissing = errors.New("no credential registered for role")

	// ErrCapabilitiesRequired is returned when a capability table is not
	// provided.
	ErrCapabilitiesRequired = errors.New("capability table required")

	// ErrRegistryRequired is returned when a credential registry is not
	// provided.
	ErrRegistryRequired = errors.New("credential registry required")
)
