package driver

import (
	"testing"

	"github.com/chessbench/arena/internal/baseline"
	"github.com/chessbench/arena/internal/board"
	"github.com/chessbench/arena/internal/engine"
	"github.com/stretchr/testify/require"
)

// weakestMover always plays the first legal move; used to keep tests fast
// and fully deterministic regardless of search depth.
type weakestMover struct{}

func (weakestMover) ChooseMove(pos *board.Position) (board.Move, error) {
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		return board.NoMove, nil
	}
	return legal.Get(0), nil
}

// stubDrawer always declines to move, forcing the driver to adjudicate a
// draw on its very first turn; used to pin down a fixed 0.5 score per
// game regardless of the opponent it's paired against.
type stubDrawer struct{}

func (stubDrawer) ChooseMove(pos *board.Position) (board.Move, error) {
	return board.NoMove, nil
}

func openings(t *testing.T, n int) []*board.Position {
	t.Helper()
	out := make([]*board.Position, n)
	for i := range out {
		out[i] = board.NewPosition()
	}
	return out
}

func TestRunSingleThresholdProducesResults(t *testing.T) {
	cfg := Config{
		Openings:         openings(t, 2),
		Opponents:        []Opponent{{Name: "weak", Player: weakestMover{}}},
		GamesPerOpponent: 2,
		PlyCap:           20,
		Seed:             1,
		Mode:             SingleThreshold,
		PassThreshold:    0.0,
	}
	d := New(cfg)

	summary, err := d.Run(weakestMover{})
	require.NoError(t, err)
	require.Len(t, summary.Results, 4) // 2 openings x 2 colors
	require.Len(t, summary.Opponents, 1)
	require.Equal(t, 4, summary.Opponents[0].Games)
}

func TestRunRespectsPlyCapAdjudication(t *testing.T) {
	cfg := Config{
		Openings:         openings(t, 1),
		Opponents:        []Opponent{{Name: "weak", Player: weakestMover{}}},
		GamesPerOpponent: 1,
		PlyCap:           2,
		Seed:             1,
		Mode:             SingleThreshold,
		PassThreshold:    0.0,
	}
	d := New(cfg)

	summary, err := d.Run(weakestMover{})
	require.NoError(t, err)
	for _, r := range summary.Results {
		require.LessOrEqual(t, r.Plies, 2)
	}
}

func TestRunFleetModeRequiresMinWins(t *testing.T) {
	cfg := Config{
		Openings:         openings(t, 1),
		Opponents:        []Opponent{{Name: "weak", Player: weakestMover{}}},
		GamesPerOpponent: 1,
		PlyCap:           10,
		Seed:             1,
		Mode:             Fleet,
		MinWins:          100, // unreachable in a 1-game sample
	}
	d := New(cfg)

	summary, err := d.Run(weakestMover{})
	require.NoError(t, err)
	require.False(t, summary.OverallPass)
}

func TestVerdictLevelLadderReportsHighestClearedOpponent(t *testing.T) {
	d := New(Config{Mode: LevelLadder, PassThreshold: 0.6})

	// easy: NN clears it comfortably. medium: NN clears it right at the
	// bar. hard: NN falls short, so the ladder should stop there and
	// report medium as the highest level cleared.
	opponents := []OpponentSummary{
		{Name: "easy", Games: 4, TotalScore: 4.0},
		{Name: "medium", Games: 4, TotalScore: 2.5},
		{Name: "hard", Games: 4, TotalScore: 1.0},
	}
	for i := range opponents {
		opponents[i].LevelPassed = d.opponentPassed(opponents[i])
	}

	require.True(t, opponents[0].LevelPassed)
	require.True(t, opponents[1].LevelPassed)
	require.False(t, opponents[2].LevelPassed)

	pass, highest := d.verdict(opponents)
	require.False(t, pass) // hard never cleared, so the overall ladder fails
	require.Equal(t, "medium", highest)
}

func TestVerdictFleetRequiresEveryOpponentToClearMinWins(t *testing.T) {
	d := New(Config{Mode: Fleet, MinWins: 3})

	strong := OpponentSummary{Name: "strong", Games: 4, Wins: 4}
	weak := OpponentSummary{Name: "weak", Games: 4, Wins: 1} // under MinWins
	strong.LevelPassed = d.opponentPassed(strong)
	weak.LevelPassed = d.opponentPassed(weak)

	require.True(t, strong.LevelPassed)
	require.False(t, weak.LevelPassed)

	passBoth, _ := d.verdict([]OpponentSummary{strong, strong})
	require.True(t, passBoth)

	passMixed, _ := d.verdict([]OpponentSummary{strong, weak})
	require.False(t, passMixed, "fleet must fail overall when any single roster opponent falls short of MinWins")
}

func TestRunLevelLadderStopsAtFirstOpponentNNCannotBeat(t *testing.T) {
	// stubDrawer never has the NN bot move, forcing a DrawByAdjudication
	// (score 0.5) on every single game regardless of opponent. With the
	// pass bar set above 0.5, the ladder should fail and stop at the
	// very first roster entry instead of also playing the second.
	cfg := Config{
		Openings: openings(t, 1),
		Opponents: []Opponent{
			{Name: "easy", Player: weakestMover{}},
			{Name: "hard", Player: weakestMover{}},
		},
		GamesPerOpponent: 1,
		PlyCap:           10,
		Seed:             1,
		Mode:             LevelLadder,
		PassThreshold:    0.75, // a drawn record (avg 0.5) cannot clear this bar
	}
	d := New(cfg)

	summary, err := d.Run(stubDrawer{})
	require.NoError(t, err)
	require.Len(t, summary.Opponents, 1, "ladder must stop after the first opponent it fails against")
	require.Equal(t, "easy", summary.Opponents[0].Name)
	require.False(t, summary.Opponents[0].LevelPassed)
	require.False(t, summary.OverallPass)
	require.Equal(t, "", summary.HighestLevel)
}

func TestRunDeterministicWithSameSeed(t *testing.T) {
	newCfg := func() Config {
		return Config{
			Openings:         openings(t, 2),
			Opponents:        []Opponent{{Name: "baseline", Player: BaselinePlayer{Bot: baseline.New(baseline.Config{Depth: 2, Mode: engine.Classic, Seed: 7})}}},
			GamesPerOpponent: 2,
			PlyCap:           12,
			Seed:             5,
			Mode:             SingleThreshold,
			PassThreshold:    0.0,
		}
	}

	mover := func() Player { return BaselinePlayer{Bot: baseline.New(baseline.Config{Depth: 2, Mode: engine.Classic, Seed: 11})} }

	d1 := New(newCfg())
	s1, err := d1.Run(mover())
	require.NoError(t, err)

	d2 := New(newCfg())
	s2, err := d2.Run(mover())
	require.NoError(t, err)

	require.Equal(t, len(s1.Results), len(s2.Results))
	for i := range s1.Results {
		require.Equal(t, s1.Results[i].Score, s2.Results[i].Score)
		require.Equal(t, s1.Results[i].Plies, s2.Results[i].Plies)
	}
}
