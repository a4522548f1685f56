// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package govobject defines the governance data model of spec §3:
// GovernanceObject, GovernanceVote, and the enums that qualify them.
package govobject

import "github.com/dashpay/govd/fault"

// ObjectType enumerates the kinds of governance object spec §3
// names. The zero value is deliberately invalid so a
// zero-initialized GovernanceObject fails validation rather than
// silently acting like a proposal.
type ObjectType uint8

const (
	Unknown ObjectType = iota
	Proposal
	Record
	Trigger
	Other
)

func (t ObjectType) String() string {
	switch t {
	case Proposal:
		return "PROPOSAL"
	case Record:
		return "RECORD"
	case Trigger:
		return "TRIGGER"
	case Other:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

func (t ObjectType) MarshalText() ([]byte, error) {
	if t == Unknown {
		return nil, fault.ErrUnknownObjectType
	}
	return []byte(t.String()), nil
}

func (t *ObjectType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "PROPOSAL":
		*t = Proposal
	case "RECORD":
		*t = Record
	case "TRIGGER":
		*t = Trigger
	case "OTHER":
		*t = Other
	default:
		return fault.ErrUnknownObjectType
	}
	return nil
}

// Signal is a vote's statement about what aspect of an object it
// concerns.
type Signal uint8

const (
	SignalNone Signal = iota
	Funding
	Valid
	Delete
	Endorsed
)

func (s Signal) String() string {
	switch s {
	case Funding:
		return "FUNDING"
	case Valid:
		return "VALID"
	case Delete:
		return "DELETE"
	case Endorsed:
		return "ENDORSED"
	default:
		return "NONE"
	}
}

func (s Signal) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Signal) UnmarshalText(b []byte) error {
	switch string(b) {
	case "FUNDING":
		*s = Funding
	case "VALID":
		*s = Valid
	case "DELETE":
		*s = Delete
	case "ENDORSED":
		*s = Endorsed
	default:
		*s = SignalNone
	}
	return nil
}

// Outcome is the YES/NO/ABSTAIN value attached to a vote's signal.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	Yes
	No
	Abstain
)

func (o Outcome) String() string {
	switch o {
	case Yes:
		return "YES"
	case No:
		return "NO"
	case Abstain:
		return "ABSTAIN"
	default:
		return "NONE"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "YES":
		*o = Yes
	case "NO":
		*o = No
	case "ABSTAIN":
		*o = Abstain
	default:
		*o = OutcomeNone
	}
	return nil
}
