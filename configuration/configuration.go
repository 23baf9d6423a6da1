// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/tierpass/tierpassd/chain"
	"github.com/tierpass/tierpassd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultTierPassDatabase = chain.TierPass + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultIdentityFile = "identities.json"

	defaultLogDirectory = "log"
	defaultLogFile      = "tierpass.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - where the pass store lives
type DatabaseType struct {
	Directory string `gluamapper:"directory"`
	Name      string `gluamapper:"name"`
}

// MarketType - engine identity and accounts
type MarketType struct {
	Instance string   `gluamapper:"instance"` // deployment tag bound into admission digests
	Custody  string   `gluamapper:"custody"`  // base58 account holding retained value
	Receiver string   `gluamapper:"receiver"` // optional base58 payment receiver
	Admin    string   `gluamapper:"admin"`    // base58 account bootstrapped with the admin capability
	Signers  []string `gluamapper:"signers"`  // base58 accounts granted the signer capability
}

// PolicyType - initial refund policy, all rates at 100-scale
type PolicyType struct {
	MaxHoldingDays uint64 `gluamapper:"max_holding_days"`
	BaseRate       uint64 `gluamapper:"base_rate"`
	DecayPerDay    uint64 `gluamapper:"decay_per_day"`
	MinRate        uint64 `gluamapper:"min_rate"`
	CooldownHours  uint64 `gluamapper:"cooldown_hours"`
}

// WindowType - unix-second bounds, both zero disables
type WindowType struct {
	Start int64 `gluamapper:"start"`
	End   int64 `gluamapper:"end"`
}

// Configuration - the full configuration tree
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory"`
	Chain         string               `gluamapper:"chain"`
	IdentityFile  string               `gluamapper:"identity_file"`
	Database      DatabaseType         `gluamapper:"database"`
	Market        MarketType           `gluamapper:"market"`
	Policy        PolicyType           `gluamapper:"policy"`
	Purchases     WindowType           `gluamapper:"purchases"`
	Refunds       WindowType           `gluamapper:"refunds"`
	Logging       logger.Configuration `gluamapper:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		Chain:         chain.TierPass,
		IdentityFile:  defaultIdentityFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultTierPassDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default pick the chain's own file
	if defaultTierPassDatabase == options.Database.Name {
		switch options.Chain {
		case chain.TierPass:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.IdentityFile,
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names
	mustNotBePaths := []string{
		options.Database.Name,
		options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("file: %q is not a plain name", f)
		}
	}

	// make absolute database path
	options.Database.Name = filepath.Join(options.Database.Directory, options.Database.Name)

	// done
	return options, nil
}

// DatabasePath - the full path of the LevelDB store
func (c *Configuration) DatabasePath() string {
	return c.Database.Name
}
