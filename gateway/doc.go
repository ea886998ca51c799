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


// Package gateway implements the role-scoped search gateway.
//
// Each role is bound 1:1 to a backend credential. The Registry lazily
// constructs and caches one authenticated connection per role; the Gateway
// routes searches through the calling role's connection so that access
// control is enforced by the backend per credential, not by client-side
// filtering.
//
// Three behaviors distinguish the gateway from a plain search client:
//
//   - Access overrides resolved from the capability table before any backend
//     call: revoked roles get a synthetic "No Access" sentinel, roles scoped
//     away from a collection get an empty result set.
//   - Authorization-failure absorption: a backend permission denial becomes
//     an empty successful result, so absence of data and absence of
//     permission are observably identical to callers.
//   - Schema normalization: the contracts and tickets payload schemas are
//     masked behind one canonical result shape with documented fallbacks.
package gateway
