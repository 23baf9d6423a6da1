// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tierpass/tierpassd/chain"
	"github.com/tierpass/tierpassd/configuration"
)

const configurationText = `
local M = {}

M.data_directory = "."
M.chain = "testing"

M.market = {
    instance = "alpha-1",
    custody = "custody-account",
}

M.policy = {
    max_holding_days = 30,
    base_rate = 80,
    decay_per_day = 200,
    min_rate = 20,
    cooldown_hours = 24,
}

M.purchases = {
    start = 1700000000,
    ["end"] = 1710000000,
}

M.logging = {
    size = 1048576,
    count = 20,
    levels = {
        DEFAULT = "info",
    },
}

return M
`

const configurationFileName = "test-tierpass.conf"

func writeConfiguration(t *testing.T, text string) func() {
	err := ioutil.WriteFile(configurationFileName, []byte(text), 0600)
	assert.Nil(t, err, "configuration write must succeed")
	return func() { _ = os.Remove(configurationFileName) }
}

func TestGetConfiguration(t *testing.T) {
	defer writeConfiguration(t, configurationText)()

	c, err := configuration.GetConfiguration(configurationFileName)
	assert.Nil(t, err, "parse must succeed")

	assert.Equal(t, chain.Testing, c.Chain, "chain must be set")
	assert.Equal(t, "alpha-1", c.Market.Instance, "market instance must be set")
	assert.Equal(t, "custody-account", c.Market.Custody, "custody must be set")
	assert.Equal(t, "", c.Market.Receiver, "receiver defaults to unset")

	assert.Equal(t, uint64(30), c.Policy.MaxHoldingDays, "policy values must map")
	assert.Equal(t, uint64(80), c.Policy.BaseRate, "policy values must map")
	assert.Equal(t, int64(1700000000), c.Purchases.Start, "window start must map")
	assert.Equal(t, int64(1710000000), c.Purchases.End, "window end must map")
	assert.True(t, c.Refunds.Start == 0 && c.Refunds.End == 0, "unset window stays disabled")

	// testing chain picks the testing database by default
	assert.Equal(t, chain.Testing+".leveldb", filepath.Base(c.DatabasePath()), "database must follow chain")
	assert.True(t, filepath.IsAbs(c.DatabasePath()), "database path must be absolute")
	assert.True(t, filepath.IsAbs(c.IdentityFile), "identity file must be absolute")
	assert.True(t, filepath.IsAbs(c.Logging.Directory), "log directory must be absolute")

	assert.Equal(t, "info", c.Logging.Levels["DEFAULT"], "log levels must map")
	assert.Equal(t, 20, c.Logging.Count, "log count must map")
}

func TestRejectUnknownChain(t *testing.T) {
	defer writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "mainnet"
return M
`)()

	_, err := configuration.GetConfiguration(configurationFileName)
	assert.NotNil(t, err, "an unknown chain must be rejected")
}

func TestRejectMissingDataDirectory(t *testing.T) {
	defer writeConfiguration(t, `
local M = {}
M.chain = "local"
return M
`)()

	_, err := configuration.GetConfiguration(configurationFileName)
	assert.NotNil(t, err, "a blank data directory must be rejected")
}
