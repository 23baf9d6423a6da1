// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - resolve a path relative to a base directory
//
// already absolute paths are only cleaned; the configuration uses
// this to anchor every relative entry at the data directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check that a path names an existing file
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
