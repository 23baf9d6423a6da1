// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/tierpass/tierpassd/chain"
	"github.com/tierpass/tierpassd/command/tierpass-cli/identities"
	"github.com/tierpass/tierpassd/configuration"
	"github.com/tierpass/tierpassd/util"
)

type metadata struct {
	file       string
	config     *configuration.Configuration
	identities *identities.Store
	save       bool
	testnet    bool
	verbose    bool
	e          io.Writer
	w          io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "tierpass-cli"
	app.Usage = "manage and exercise a tierpass store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in identity file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to identity file, set it as default when first",
			ArgsUsage: "name\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " using existing private key `KEY`",
				},
				cli.BoolFlag{
					Name:  "account, a",
					Usage: " add a receive-only account instead of a key",
				},
				cli.StringFlag{
					Name:  "base58, b",
					Value: "",
					Usage: " base58 account for receive-only `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "list",
			Usage:  "list identities in the identity file",
			Action: runList,
		},
		{
			Name:      "add-card",
			Usage:     "create a card in the catalog",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "card",
					Usage: "*card id `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "level",
					Usage: "*card level `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "price",
					Usage: "*card price `NUMBER`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " card metadata `STRING`",
				},
			},
			Action: runAddCard,
		},
		{
			Name:      "update-card",
			Usage:     "update an existing card",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "card",
					Usage: "*card id `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "level",
					Usage: "*card level `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "price",
					Usage: "*card price `NUMBER`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " card metadata `STRING`",
				},
			},
			Action: runUpdateCard,
		},
		{
			Name:      "grant",
			Usage:     "issue passes of a card directly to an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "card",
					Usage: "*card id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "to",
					Value: "",
					Usage: "*receiving identity or base58 account `NAME`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 1,
					Usage: " number of passes to issue `COUNT`",
				},
			},
			Action: runGrant,
		},
		{
			Name:  "cards",
			Usage: "list cards in the catalog",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Usage: " first card id `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to return `COUNT`",
				},
			},
			Action: runCards,
		},
		{
			Name:      "authorize",
			Usage:     "sign an admission for a caller, output hex signature",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, o",
					Value: "",
					Usage: "*caller identity or base58 account `NAME`",
				},
			},
			Action: runAuthorize,
		},
		{
			Name:      "purchase",
			Usage:     "purchase a pass for a card",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "card",
					Usage: "*card id `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "payment",
					Usage: "*payment amount `NUMBER`",
				},
				cli.StringFlag{
					Name:  "signature, s",
					Value: "",
					Usage: "*hex admission signature `SIG`",
				},
			},
			Action: runPurchase,
		},
		{
			Name:      "upgrade",
			Usage:     "upgrade a pass to a higher card",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "pass",
					Usage: "*pass number `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "card",
					Usage: "*target card id `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "payment",
					Usage: "*payment amount `NUMBER`",
				},
			},
			Action: runUpgrade,
		},
		{
			Name:      "eligibility",
			Usage:     "check refund eligibility for a pass",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "pass",
					Usage: "*pass number `NUMBER`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " claimed owner identity or base58 account `NAME`",
				},
			},
			Action: runEligibility,
		},
		{
			Name:      "refund",
			Usage:     "refund a held pass at the decayed rate",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "pass",
					Usage: "*pass number `NUMBER`",
				},
			},
			Action: runRefund,
		},
		{
			Name:  "owned",
			Usage: "list passes held by an owner",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner identity or base58 account `NAME`",
				},
			},
			Action: runOwned,
		},
		{
			Name:  "status",
			Usage: "show policy, windows, receiver and custody state",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " include account state for `NAME`",
				},
			},
			Action: runStatus,
		},
		{
			Name:  "balance",
			Usage: "show fund balances for an account",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner identity or base58 account `NAME`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "deposit",
			Usage:     "credit funds to an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " receiving identity or base58 account `NAME`",
				},
				cli.Uint64Flag{
					Name:  "amount",
					Usage: "*amount to credit `NUMBER`",
				},
				cli.StringFlag{
					Name:  "currency",
					Value: "native",
					Usage: " currency [native|aux]",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "sweep",
			Usage:     "move custody to a destination after the refund window closes",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "to",
					Value: "",
					Usage: "*destination identity or base58 account `NAME`",
				},
			},
			Action: runSweep,
		},
		{
			Name:      "withdraw-aux",
			Usage:     "withdraw stray secondary-asset value from custody",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "to",
					Value: "",
					Usage: "*destination identity or base58 account `NAME`",
				},
				cli.Uint64Flag{
					Name:  "amount",
					Usage: "*amount to withdraw `NUMBER`",
				},
			},
			Action: runWithdrawAux,
		},
		{
			Name:  "version",
			Usage: "display this program version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and identity file
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		if "version" == command || "generate" == command || "help" == command || "h" == command || "" == command {
			return nil
		}

		file := c.GlobalString("config")
		if "" == file {
			return fmt.Errorf("configuration file is not set, use --config FILE")
		}
		if !util.EnsureFileExists(file) {
			return fmt.Errorf("configuration file: %q does not exist", file)
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		cfg, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		store, err := identities.Load(cfg.IdentityFile)
		if nil != err {
			if !os.IsNotExist(err) {
				return err
			}
			store = identities.New(chain.TierPass != cfg.Chain)
		}

		c.App.Metadata["config"] = &metadata{
			file:       file,
			config:     cfg,
			identities: store,
			save:       false,
			testnet:    store.TestNet,
			verbose:    verbose,
			e:          e,
			w:          w,
		}

		return nil
	}

	// update the identity file if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating identity file: %s\n", m.config.IdentityFile)
			}
			err := identities.Save(m.config.IdentityFile, m.identities)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
