// Package config holds the competition harness's configuration, read from
// a TOML file and overridable by command-line flags.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("config")

// ConfFile is the path to the config file, relative to the working
// directory unless overridden before Setup is called.
var ConfFile = "./compete.toml"

// Settings is the global configuration, populated by Setup.
var Settings conf

var initialized = false

type conf struct {
	Driver    driverConfig
	Opponents []opponentConfig
	Model     modelConfig
}

// driverConfig configures the competition driver.
type driverConfig struct {
	GamesPerOpponent int
	Level            string
	Seed             int64
	PlyCap           int
	PassThreshold    float64
	MinWins          int
}

// opponentConfig configures a single baseline opponent entered into the
// roster. Name identifies it in level-ladder/fleet reporting.
type opponentConfig struct {
	Name        string
	Depth       int
	Mode        string
	WindowCP    int
	BlunderRate float64
}

// modelConfig configures the evaluator loader.
type modelConfig struct {
	Path      string
	MaxParams int
}

func defaults() conf {
	return conf{
		Driver: driverConfig{
			GamesPerOpponent: 10,
			Level:            "",
			Seed:             1,
			PlyCap:           500,
			PassThreshold:    0.70,
			MinWins:          1,
		},
		// Opponents forms a roster of increasing strength, used by
		// Fleet (win every opponent) and LevelLadder (climb until the
		// first failure) scoring modes.
		Opponents: []opponentConfig{
			{Name: "easy", Depth: 2, Mode: "classic", WindowCP: 80, BlunderRate: 0.25},
			{Name: "medium", Depth: 3, Mode: "classic", WindowCP: 40, BlunderRate: 0.05},
			{Name: "hard", Depth: 4, Mode: "enhanced", WindowCP: 15, BlunderRate: 0.0},
		},
		Model: modelConfig{
			MaxParams: 10_000_000,
		},
	}
}

// Setup reads ConfFile into Settings, falling back to defaults for any
// value the file does not set or when the file is absent. Safe to call
// more than once; only the first call has effect.
func Setup() {
	if initialized {
		return
	}
	Settings = defaults()

	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Warningf("config file %s not found or invalid, using defaults: %v", ConfFile, err)
	}
	initialized = true
}

// Reset clears the initialized flag so Setup will reload on next call.
// Exists for tests that need to exercise Setup more than once.
func Reset() {
	initialized = false
}
