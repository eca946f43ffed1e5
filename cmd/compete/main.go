// Command compete runs the NN bot against a roster of baseline opponents
// and exits 0 on pass, non-zero on fail.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chessbench/arena/internal/baseline"
	"github.com/chessbench/arena/internal/book"
	"github.com/chessbench/arena/internal/config"
	"github.com/chessbench/arena/internal/driver"
	"github.com/chessbench/arena/internal/engine"
	"github.com/chessbench/arena/internal/modelio"
	"github.com/chessbench/arena/internal/nnbot"
	"github.com/fatih/color"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("compete")

var (
	modelPath        = flag.String("model", "", "path to the evaluator weight manifest (required)")
	bookPath         = flag.String("book", "", "path to the opening book (FEN per line, required)")
	gamesPerOpponent = flag.Int("games-per-opponent", 0, "games played per opponent per color (0 = config default)")
	level            = flag.String("level", "", "level-ladder opponent name to stop at (empty = config default/fleet)")
	seed             = flag.Int64("seed", 0, "RNG seed (0 = config default)")
	mode             = flag.String("mode", "threshold", "scoring mode: threshold, fleet, or ladder")
)

func setupLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfunc} %{level:.4s} %{message}`,
	)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
}

func main() {
	setupLogging()
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if *modelPath == "" || *bookPath == "" {
		fmt.Fprintln(os.Stderr, "usage: compete --model PATH --book PATH [--games-per-opponent N] [--seed S] [--mode threshold|fleet|ladder]")
		return 2
	}

	config.Setup()
	s := config.Settings

	if *gamesPerOpponent > 0 {
		s.Driver.GamesPerOpponent = *gamesPerOpponent
	}
	if *seed != 0 {
		s.Driver.Seed = *seed
	}
	if *level != "" {
		s.Driver.Level = *level
	}

	evaluator, err := modelio.Load(*modelPath, modelio.ModelConfig{MaxParams: s.Model.MaxParams})
	if err != nil {
		log.Errorf("loading model: %v", err)
		color.Red("model rejected: %v", err)
		return 1
	}

	ob, err := book.Load(*bookPath)
	if err != nil {
		log.Errorf("loading opening book: %v", err)
		return 1
	}

	nn := nnbot.New(nnbot.Config{}, evaluator)

	var roster []driver.Opponent
	for i, o := range s.Opponents {
		opponentMode := parseMode(o.Mode)
		bot := baseline.New(baseline.Config{
			Depth:       o.Depth,
			Mode:        opponentMode,
			WindowCP:    o.WindowCP,
			BlunderRate: o.BlunderRate,
			Seed:        s.Driver.Seed + int64(i),
		})
		roster = append(roster, driver.Opponent{Name: o.Name, Player: driver.BaselinePlayer{Bot: bot}})
		if s.Driver.Level != "" && o.Name == s.Driver.Level {
			break
		}
	}
	if len(roster) == 0 {
		log.Errorf("no opponents configured (level %q matched nothing in the roster)", s.Driver.Level)
		return 1
	}

	scoringMode := parseScoringMode(*mode)
	d := driver.New(driver.Config{
		Openings:         ob.All(),
		Opponents:        roster,
		GamesPerOpponent: s.Driver.GamesPerOpponent,
		PlyCap:           s.Driver.PlyCap,
		Seed:             s.Driver.Seed,
		Mode:             scoringMode,
		PassThreshold:    s.Driver.PassThreshold,
		MinWins:          s.Driver.MinWins,
	})

	summary, err := d.Run(nn)
	if err != nil {
		log.Errorf("competition run failed: %v", err)
		return 1
	}

	printSummary(summary)

	if summary.OverallPass {
		color.Green("PASS")
		return 0
	}
	color.Red("FAIL")
	return 1
}

func parseMode(s string) engine.Mode {
	if s == "classic" {
		return engine.Classic
	}
	return engine.Enhanced
}

func parseScoringMode(s string) driver.ScoringMode {
	switch s {
	case "fleet":
		return driver.Fleet
	case "ladder":
		return driver.LevelLadder
	default:
		return driver.SingleThreshold
	}
}

func printSummary(s *driver.Summary) {
	fmt.Println("\nSummary:")
	for _, o := range s.Opponents {
		games := o.Games
		if games == 0 {
			games = 1
		}
		fmt.Printf("  %-16s W:%-3d D:%-3d L:%-3d (%.2f)\n", o.Name, o.Wins, o.Draws, o.Losses, o.TotalScore/float64(games))
	}
	if s.HighestLevel != "" {
		fmt.Printf("  highest level cleared: %s\n", s.HighestLevel)
	}
}
