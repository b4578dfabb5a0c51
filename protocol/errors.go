// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package protocol

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errMissingMagic = errors.New("missing or unrecognized magic byte")
	errMissingState = errors.New("persisted blob is missing its state machine payload")
)

// Kind classifies every error this package returns to the host, so a foreign caller can switch
// on it without parsing error strings.
type Kind string

const (
	MalformedFrame       Kind = "malformed_frame"
	MalformedInit        Kind = "malformed_init"
	MalformedPeerMessage Kind = "malformed_peer_message"
	CryptoFailure        Kind = "crypto_failure"
	ProtocolFinished     Kind = "protocol_finished"
	ProtocolNotFinished  Kind = "protocol_not_finished"
	CorruptState         Kind = "corrupt_state"
	CorruptGroup         Kind = "corrupt_group"
)

// Error is fatal to the handle that produced it: the driver never retries internally, and a
// handle that returned one must not be advanced further (it may still be inspected or freed).
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

func newErr(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func newErrf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Is reports whether err is a *Error of the given kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
