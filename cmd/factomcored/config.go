// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/sambarnes/factom-core/chaincfg"
)

const (
	defaultConfigFilename = "factomcored.conf"
	defaultLogFilename    = "factomcored.log"
	defaultVMCount        = 1
)

var (
	factomcoredHomeDir = appDataDir("factomcored", false)
	defaultConfigFile  = filepath.Join(factomcoredHomeDir, defaultConfigFilename)
	defaultDataDir     = filepath.Join(factomcoredHomeDir, "data")
	defaultLogDir      = filepath.Join(factomcoredHomeDir, "logs")
)

// config defines the configuration options for factomcored, parsed from
// the command line. The configfile option is accepted, but loadConfig
// does not read a config file.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store the chain's persistent data"`
	LogDir     string `long:"logdir" description:"Directory to log output"`

	TestNet bool   `long:"testnet" description:"Use the test network"`
	LocalID string `long:"localnet" description:"Use a local, deterministically-parameterized network with the given name"`

	VMCount int `long:"vmcount" description:"Number of validation manager slots to rotate across"`

	NoFileLogging bool `long:"nofilelogging" description:"Disable logging to a log file"`
	Debug         bool `long:"debug" description:"Log at debug level instead of info"`

	netParams *chaincfg.Params
}

// netName returns the name used for factomcored's per-network data and log
// subdirectories.
func netName(params *chaincfg.Params) string {
	return params.Name
}

// loadConfig reads flags from the command line, applying defaults for any
// left unset, and returns the resulting config plus the leftover
// non-flag arguments.
func loadConfig() (*config, []string, error) {
	cfg := config{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		VMCount:    defaultVMCount,
	}

	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	var numNets int
	if cfg.TestNet {
		numNets++
	}
	if cfg.LocalID != "" {
		numNets++
	}
	if numNets > 1 {
		return nil, nil, fmt.Errorf("the testnet and localnet options may not be used together")
	}

	switch {
	case cfg.TestNet:
		cfg.netParams = chaincfg.TestNetParams()
	case cfg.LocalID != "":
		cfg.netParams = chaincfg.NewLocalParams(cfg.LocalID)
	default:
		cfg.netParams = chaincfg.MainNetParams()
	}

	cfg.DataDir = filepath.Join(cfg.DataDir, netName(cfg.netParams))
	cfg.LogDir = filepath.Join(cfg.LogDir, netName(cfg.netParams))

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if !cfg.NoFileLogging {
		if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if cfg.VMCount < 1 {
		return nil, nil, fmt.Errorf("vmcount must be at least 1")
	}

	return &cfg, remainingArgs, nil
}

// appDataDir returns an operating system specific directory to be used
// for storing application data for an application. appName is the name
// of the application. On every operating system it returns "."+appName
// under the user's home directory (or "." when the home directory is
// unknown); the roaming argument is ignored and no Windows-specific
// roaming/local split is made.
func appDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, "."+appName)
}
