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


package core

import "fmt"

// Role is a fixed caller identity governing which backend credential and
// access policy apply to a request.
type Role string

const (
	RoleHeadOfSupport   Role = "HEAD_OF_SUPPORT"
	RoleAccountManagerA Role = "ACCOUNT_MANAGER_A"
	RoleAccountManagerB Role = "ACCOUNT_MANAGER_B"
	RoleAccountManagerC Role = "ACCOUNT_MANAGER_C"
	RoleSupportAgent    Role = "SUPPORT_AGENT"
)

// Roles lists every known role in display order.
var Roles = []Role{
	RoleHeadOfSupport,
	RoleAccountManagerA,
	RoleAccountManagerB,
	RoleAccountManagerC,
	RoleSupportAgent,
}

// ParseRole validates a role identifier received from a caller.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if Role(s) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Capability describes what a role may see. Capabilities are resolved once at
// configuration time; access checks never compare role identifiers against
// literals at call sites.
type Capability struct {
	// HasAccess is false for roles whose access has been revoked entirely.
	// Such roles receive a synthetic "No Access" sentinel instead of results.
	HasAccess bool

	// Collections holds the collections this role may search. A role with
	// HasAccess true but a collection absent here receives an empty result
	// set for that collection without a backend call.
	Collections map[Collection]bool
}

// Allows reports whether the capability permits searching the collection.
func (c Capability) Allows(collection Collection) bool {
	return c.HasAccess && c.Collections[collection]
}

// CapabilityTable maps every role to its capability.
type CapabilityTable map[Role]Capability

// DefaultCapabilities returns the demo's access policy:
// managers A and B and the head of support see everything, the support agent
// sees tickets only, and account manager C (moved to the graphics team) sees
// nothing.
func DefaultCapabilities() CapabilityTable {
	all := map[Collection]bool{CollectionContracts: true, CollectionTickets: true}
	ticketsOnly := map[Collection]bool{CollectionTickets: true}
	return CapabilityTable{
		RoleHeadOfSupport:   {HasAccess: true, Collections: all},
		RoleAccountManagerA: {HasAccess: true, Collections: all},
		RoleAccountManagerB: {HasAccess: true, Collections: all},
		RoleAccountManagerC: {HasAccess: false},
		RoleSupportAgent:    {HasAccess: true, Collections: ticketsOnly},
	}
}

// RoleDescriptions describes each role's access in prose. Used as context in
// the cross-role meta-analysis prompt.
var RoleDescriptions = map[Role]string{
	RoleHeadOfSupport:   "Full access to all support tickets and account data",
	RoleAccountManagerA: "Access to Alpha and Charlie accounts and related tickets",
	RoleAccountManagerB: "Access to Badger and Charlie accounts and related tickets",
	RoleAccountManagerC: "Access revoked - Moved to graphics team",
	RoleSupportAgent:    "Access to all tickets but no contracts",
}
