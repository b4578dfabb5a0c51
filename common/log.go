// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import logging "github.com/ipfs/go-log"

// Logger is shared across the driver and the round functions it drives.
var Logger = logging.Logger("mpcsigs")
