// Package driver implements the competition driver: it iterates an
// opening book, plays paired-color games between the NN bot and a roster
// of baseline opponents, and aggregates scores against pass/fail
// thresholds.
package driver

import (
	"fmt"

	"github.com/chessbench/arena/internal/board"
	"github.com/fatih/color"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("driver")

// Player is anything that can choose a move for the side to move.
type Player interface {
	ChooseMove(pos *board.Position) (board.Move, error)
}

// ScoringMode selects how per-opponent results roll up into an overall
// pass/fail verdict.
type ScoringMode int

const (
	// SingleThreshold passes iff score/games >= PassThreshold, for the
	// (single) configured opponent.
	SingleThreshold ScoringMode = iota
	// Fleet passes iff the NN bot wins at least MinWins outright against
	// every opponent (draws do not count).
	Fleet
	// LevelLadder plays opponents in order, stopping at the first
	// opponent the NN bot fails against (per SingleThreshold's rule).
	LevelLadder
)

// Opponent names a baseline configuration entered into the competition.
type Opponent struct {
	Name   string
	Player Player
}

// Config configures a single competition run.
type Config struct {
	Openings         []*board.Position
	Opponents        []Opponent
	GamesPerOpponent int
	PlyCap           int
	Seed             int64
	Mode             ScoringMode
	PassThreshold    float64
	MinWins          int
}

// GameResult records the outcome of a single game from the NN bot's
// perspective.
type GameResult struct {
	OpponentName string
	NNColor      board.Color
	Score        float64 // 1.0 win, 0.5 draw, 0.0 loss
	Plies        int
	Outcome      board.Outcome
}

// OpponentSummary aggregates every game played against one opponent.
type OpponentSummary struct {
	Name        string
	Wins        int
	Draws       int
	Losses      int
	Games       int
	TotalScore  float64
	LevelPassed bool
}

// Summary is the final result of a competition run.
type Summary struct {
	Opponents    []OpponentSummary
	Results      []GameResult
	OverallPass  bool
	HighestLevel string
}

// Driver runs a competition between an NN bot and a roster of opponents.
// It carries no randomness of its own and does not read cfg.Seed: the
// opponents arrive already seeded (cmd/compete derives each baseline bot's
// Seed from the configured one), so the whole run is reproducible given the
// same model, seed, and opening list.
type Driver struct {
	cfg Config
}

// New constructs a Driver from cfg.
func New(cfg Config) *Driver {
	plyCap := cfg.PlyCap
	if plyCap <= 0 {
		plyCap = 500
	}
	cfg.PlyCap = plyCap
	return &Driver{cfg: cfg}
}

// Run plays the full schedule and returns the aggregated Summary.
func (d *Driver) Run(nn Player) (*Summary, error) {
	summary := &Summary{}

	for _, opp := range d.cfg.Opponents {
		osum := OpponentSummary{Name: opp.Name}

		games := d.cfg.GamesPerOpponent
		if games > len(d.cfg.Openings) {
			log.Warningf("opponent %s: games-per-opponent %d exceeds book size %d, clamping", opp.Name, games, len(d.cfg.Openings))
			games = len(d.cfg.Openings)
		}

		for i := 0; i < games; i++ {
			opening := d.cfg.Openings[i]

			for _, nnColor := range []board.Color{board.White, board.Black} {
				result, err := d.playGame(nn, opp.Player, opening.Copy(), nnColor)
				if err != nil {
					return nil, fmt.Errorf("driver: opponent %s game %d: %w", opp.Name, i, err)
				}
				result.OpponentName = opp.Name
				summary.Results = append(summary.Results, result)

				osum.Games++
				osum.TotalScore += result.Score
				switch result.Score {
				case 1.0:
					osum.Wins++
				case 0.5:
					osum.Draws++
				default:
					osum.Losses++
				}

				fmt.Printf("Game %d/%d NN=%s %s (%d)\n", osum.Games, games*2, nnColor, coloredScoreLabel(result.Score), result.Plies)
				log.Debugf("opponent=%s ply=%d outcome=%s", opp.Name, result.Plies, result.Outcome)
			}
		}

		osum.LevelPassed = d.opponentPassed(osum)
		summary.Opponents = append(summary.Opponents, osum)

		if d.cfg.Mode == LevelLadder && !osum.LevelPassed {
			break
		}
	}

	summary.OverallPass, summary.HighestLevel = d.verdict(summary.Opponents)
	return summary, nil
}

// playGame plays a single game from opening until outcome != InProgress or
// the ply cap is reached, at which point it is adjudicated a draw.
func (d *Driver) playGame(nn, opp Player, pos *board.Position, nnColor board.Color) (GameResult, error) {
	plies := 0
	for {
		outcome := pos.Outcome()
		if outcome.Kind != board.InProgress {
			return GameResult{NNColor: nnColor, Score: scoreFor(outcome, nnColor), Plies: plies, Outcome: outcome}, nil
		}
		if plies >= d.cfg.PlyCap {
			adjudicated := board.Outcome{Kind: board.DrawByAdjudication}
			return GameResult{NNColor: nnColor, Score: 0.5, Plies: plies, Outcome: adjudicated}, nil
		}

		var mover Player
		if pos.SideToMove == nnColor {
			mover = nn
		} else {
			mover = opp
		}

		move, err := mover.ChooseMove(pos)
		if err != nil {
			return GameResult{}, fmt.Errorf("choose move at ply %d: %w", plies, err)
		}
		if move == board.NoMove {
			// No legal moves but Outcome() reported InProgress: treat
			// conservatively as a draw rather than loop forever.
			return GameResult{NNColor: nnColor, Score: 0.5, Plies: plies, Outcome: board.Outcome{Kind: board.DrawByAdjudication}}, nil
		}

		undo := pos.MakeMove(move)
		if !undo.Valid {
			return GameResult{}, fmt.Errorf("mover returned illegal move %s at ply %d", move.String(), plies)
		}
		plies++
	}
}

// scoreFor converts a terminal Outcome into the NN bot's score.
func scoreFor(o board.Outcome, nnColor board.Color) float64 {
	switch o.Kind {
	case board.Checkmate:
		if o.Winner == nnColor {
			return 1.0
		}
		return 0.0
	default:
		return 0.5
	}
}

// coloredScoreLabel renders a per-game result label colored for terminal
// output: green wins, red losses, yellow draws.
func coloredScoreLabel(score float64) string {
	switch score {
	case 1.0:
		return color.GreenString("WIN")
	case 0.0:
		return color.RedString("LOSS")
	default:
		return color.YellowString("DRAW")
	}
}

// opponentPassed reports whether a single opponent's results clear the
// pass bar for the driver's scoring mode.
func (d *Driver) opponentPassed(osum OpponentSummary) bool {
	switch d.cfg.Mode {
	case Fleet:
		return osum.Wins >= d.cfg.MinWins
	default: // SingleThreshold and LevelLadder use the same per-opponent bar
		if osum.Games == 0 {
			return false
		}
		return osum.TotalScore/float64(osum.Games) >= d.cfg.PassThreshold
	}
}

// verdict computes the overall pass/fail and, for level-ladder mode, the
// name of the highest level cleared.
func (d *Driver) verdict(opponents []OpponentSummary) (bool, string) {
	switch d.cfg.Mode {
	case Fleet:
		for _, o := range opponents {
			if !o.LevelPassed {
				return false, ""
			}
		}
		return true, ""
	case LevelLadder:
		highest := ""
		allPassed := true
		for _, o := range opponents {
			if !o.LevelPassed {
				allPassed = false
				break
			}
			highest = o.Name
		}
		return allPassed, highest
	default: // SingleThreshold
		if len(opponents) == 0 {
			return false, ""
		}
		return opponents[0].LevelPassed, ""
	}
}
