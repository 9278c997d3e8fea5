// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build !(js && wasm)

package store

import _ "modernc.org/sqlite"

// driverName selects the registered database/sql driver for this build.
const driverName = "sqlite"
