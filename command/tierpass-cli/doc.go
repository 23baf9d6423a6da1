// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// tierpass-cli - command line access to a tierpass store
//
// each invocation brings the full system up from the Lua
// configuration, runs one operation against the local database and
// shuts down again; identities are named key pairs held encrypted in
// a JSON file next to the configuration
package main
