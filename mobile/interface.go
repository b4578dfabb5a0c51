// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Entry points for gomobile bindings: the host-facing API expressed as a table of int handles,
// since a gomobile binding cannot pass a Go pointer across the boundary. Every operation on an
// existing handle that can fail records the failure on the handle instead of only returning it, so
// a host that only gets a boolean back (gomobile flattens multi-value returns awkwardly) can still
// retrieve the reason. DeserializeSession has no handle to record on and reports only ok=false.
package mobile

import (
	"errors"

	"github.com/jjanku/mpc-sigs/protocol"
)

type session struct {
	p       *protocol.Protocol
	lastErr string
}

// sessions are kept in Go land; a handle is just an index into this slice.
var sessions []*session

// NewKeygenSession starts a new keygen handle and returns its session ID.
func NewKeygenSession() (sessionID int) {
	sessions = append(sessions, &session{p: protocol.NewKeygen()})
	return len(sessions) - 1
}

// NewSignSession starts a new sign handle from a previously persisted group descriptor blob.
func NewSignSession(groupBytes []byte) (sessionID int, err error) {
	p, err := protocol.NewSignFromGroup(groupBytes)
	if err != nil {
		return -1, err
	}
	sessions = append(sessions, &session{p: p})
	return len(sessions) - 1, nil
}

// AdvanceSession drives one round. On failure it records the error on the handle (retrievable via
// LastError) and returns ok=false; the handle must not be advanced again afterwards.
func AdvanceSession(sessionID int, frame []byte) (out []byte, ok bool) {
	s, err := getSession(sessionID)
	if err != nil {
		return nil, false
	}
	out, err = s.p.Advance(frame)
	if err != nil {
		s.lastErr = err.Error()
		return nil, false
	}
	return out, true
}

// FinishSession returns the serialized terminal artifact (group descriptor or signature bytes).
func FinishSession(sessionID int) (artifact []byte, ok bool) {
	s, err := getSession(sessionID)
	if err != nil {
		return nil, false
	}
	artifact, err = s.p.Finish()
	if err != nil {
		s.lastErr = err.Error()
		return nil, false
	}
	return artifact, true
}

// SerializeSession snapshots the handle to a portable blob the host can store between process
// restarts.
func SerializeSession(sessionID int) (blob []byte, ok bool) {
	s, err := getSession(sessionID)
	if err != nil {
		return nil, false
	}
	blob, err = s.p.Serialize()
	if err != nil {
		s.lastErr = err.Error()
		return nil, false
	}
	return blob, true
}

// DeserializeSession restores a handle from a blob produced by SerializeSession, registering it
// under a fresh session ID.
func DeserializeSession(blob []byte) (sessionID int, ok bool) {
	p, err := protocol.Deserialize(blob)
	if err != nil {
		return -1, false
	}
	sessions = append(sessions, &session{p: p})
	return len(sessions) - 1, true
}

// LastError returns the error string recorded by the most recent failing call on sessionID, or
// the empty string if no call on the handle has failed. A later successful call does not clear it.
func LastError(sessionID int) string {
	s, err := getSession(sessionID)
	if err != nil {
		return err.Error()
	}
	return s.lastErr
}

// FreeSession releases a session handle. Safe to call more than once.
func FreeSession(sessionID int) {
	if sessionID >= 0 && sessionID < len(sessions) {
		sessions[sessionID] = nil
	}
}

func getSession(sessionID int) (*session, error) {
	if sessionID < 0 || sessionID >= len(sessions) || sessions[sessionID] == nil {
		return nil, errors.New("mobile: no such session")
	}
	return sessions[sessionID], nil
}
