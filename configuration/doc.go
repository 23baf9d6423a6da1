// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the Lua configuration file
//
// the configuration file is an executable Lua script whose final
// expression is a table; this allows computed settings while keeping
// the file declarative in the common case
package configuration
