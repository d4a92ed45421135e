// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "presspass-server/access"

// Gate is the access decision engine consulted by every handler. It is
// wired at startup (and by tests) through InitAccessEngine so the
// resolver's cache and clock stay injectable.
var Gate *access.Engine

func InitAccessEngine(engine *access.Engine) {
	Gate = engine
}
