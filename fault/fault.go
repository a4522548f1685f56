// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// WarningError is the §7 recoverable class: penalty 0, logged and
// sometimes parked (orphan vote, orphan object).
type WarningError GenericError

// PermanentError is the §7 structurally-invalid class: penalty 20,
// cached so the same hash is rejected without re-validation.
type PermanentError GenericError

// InternalError is the §7 manager-local inconsistency class: penalty
// 0, never surfaced to a peer.
type InternalError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddrinfoIsNil            = InvalidError("addrinfo is nil")
	ErrAlreadyInitialised       = ProcessError("already initialised")
	ErrConfigDirPath            = InvalidError("config is not a folder")
	ErrDataFieldEmpty           = InvalidError("data field is empty")
	ErrInvalidLoggerChannel     = ProcessError("invalid logger channel")
	ErrInvalidStructPointer     = InvalidError("argument is not a pointer to a struct")
	ErrInvalidPortNumber        = InvalidError("invalid port number")
	ErrNoAddress                = NotFoundError("no address")
	ErrNoAnnounceAddrs          = NotFoundError("no announce addresses")
	ErrNoListenAddrs            = InvalidError("no listen addresses")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrParametersLessThanExpect = LengthError("fewer parameters than expected")
	ErrRequiredConfigDir        = InvalidError("config folder is required")

	// governance-specific
	ErrUnknownObjectType      = InvalidError("unknown governance object type")
	ErrObjectAlreadyKnown     = ExistsError("governance object already known")
	ErrVoteAlreadyKnown       = ExistsError("governance vote already known")
	ErrVotePermanentlyInvalid = PermanentError("governance vote previously rejected")
	ErrOrphanVote             = WarningError("parent governance object not yet known")
	ErrOrphanObject           = WarningError("submitting masternode not yet known")
	ErrMissingConfirmations   = WarningError("collateral transaction lacks confirmations")
	ErrInvalidSignature       = PermanentError("invalid governance signature")
	ErrIneligibleVoter        = PermanentError("masternode not eligible to vote")
	ErrObjectExpiredOrDeleted = WarningError("governance object expired or deleted")
	ErrTooManyOrphans         = WarningError("too many orphan objects for masternode")
	ErrRateLimited            = WarningError("masternode exceeded trigger submission rate")
	ErrPeerTooOld             = PermanentError("peer protocol version below minimum")
	ErrNotRequested           = InternalError("hash was not previously requested")
	ErrInvalidCID             = WarningError("ipfs CID failed shape validation")
	ErrObjectPayloadEmpty     = InvalidError("governance object payload is empty")
	ErrObjectSignatureMissing = InvalidError("governance object signature is missing")
	ErrVoteSignatureMissing   = InvalidError("governance vote signature is missing")
	ErrContentTooLarge        = WarningError("pinned content exceeds size limit")
	ErrTruncatedMessage       = InvalidError("wire message truncated")
	ErrAlreadyRequested       = InternalError("hash already requested from a peer")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e LengthError) Error() string    { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RecordError) Error() string    { return string(e) }
func (e WarningError) Error() string   { return string(e) }
func (e PermanentError) Error() string { return string(e) }
func (e InternalError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

// IsWarning, IsPermanent and IsInternal classify the §7 error kinds.
func IsWarning(e error) bool   { _, ok := e.(WarningError); return ok }
func IsPermanent(e error) bool { _, ok := e.(PermanentError); return ok }
func IsInternal(e error) bool  { _, ok := e.(InternalError); return ok }

// Penalty returns the misbehavior score a peer incurs for causing e:
// zero for every kind except PermanentError, which always scores 20.
func Penalty(e error) int {
	if IsPermanent(e) {
		return 20
	}
	return 0
}
