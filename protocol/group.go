// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The group descriptor lifecycle: keygen's Finish produces this blob; it is the only way to
// construct a sign handle. Long-lived and reusable across many signing sessions, so it gets its
// own magic byte distinct from a mid-round protocol snapshot even though both ride the same
// gob-with-version-header shape.
package protocol

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/jjanku/mpc-sigs/gg18crypto"
)

const (
	groupMagic        byte = 0xa6
	groupMajorVersion byte = 1
)

func serializeGroup(g *gg18crypto.GroupDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(groupMagic)
	buf.WriteByte(groupMajorVersion)
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, errors.Wrap(err, "protocol: encoding group descriptor")
	}
	return buf.Bytes(), nil
}

func deserializeGroup(data []byte) (*gg18crypto.GroupDescriptor, error) {
	if len(data) < 2 || data[0] != groupMagic {
		return nil, errors.New("missing or unrecognized group descriptor magic byte")
	}
	if data[1] != groupMajorVersion {
		return nil, errors.Errorf("unsupported group descriptor version %d", data[1])
	}
	var g gg18crypto.GroupDescriptor
	if err := gob.NewDecoder(bytes.NewReader(data[2:])).Decode(&g); err != nil {
		return nil, errors.Wrap(err, "protocol: decoding group descriptor")
	}
	return &g, nil
}
