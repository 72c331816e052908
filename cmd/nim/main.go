// nim trains a Q-learning AI by self-play and then plays Nim against a human in the terminal.
//
// The player that takes the last object loses.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/janpfeifer/classicai/internal/ai/qlearning"
	"github.com/janpfeifer/classicai/internal/evaluation"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/janpfeifer/classicai/internal/players"
	_default "github.com/janpfeifer/classicai/internal/players/default"
	"github.com/janpfeifer/classicai/internal/profilers"
	"github.com/janpfeifer/classicai/internal/ui/cli"
	"github.com/janpfeifer/classicai/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagEpisodes   = flag.Int("episodes", qlearning.DefaultEpisodes, "Number of self-play games to train the AI.")
	flagConfig     = flag.String("config", "", "Q-learning configuration, e.g. \"alpha=0.5,epsilon=0.1,piles=1;3;5;7,seed=42\".")
	flagConfigFile = flag.String("config_file", "", "YAML file with Q-learning configuration. Values in -config take precedence.")
	flagFirst      = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagColor      = flag.Bool("color", true, "Use colors in the terminal")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	onQuit := must.M1(profilers.Setup())
	defer onQuit()

	learner := must.M1(createLearner())
	s := spinning.New(globalCtx, fmt.Sprintf("Training %d episodes", *flagEpisodes))
	err := learner.TrainContext(globalCtx, *flagEpisodes)
	s.Done()
	if err != nil {
		onQuit()
		klog.Exitf("Training interrupted: %v", err)
	}
	fmt.Printf("%s\n", learner)

	ui := cli.New(*flagColor, false)
	humanSeat := must.M1(chooseHumanSeat())
	var matchPlayers [2]players.Player[nim.Piles, nim.Action]
	matchPlayers[humanSeat] = &cli.NimHuman{UI: ui}
	matchPlayers[1-humanSeat] = &_default.QLearningPlayer{Learner: learner}
	fmt.Printf("\nYou are %s, the AI is %s.\n", nim.PlayerNum(humanSeat), nim.PlayerNum(1-humanSeat))

	initial := learner.InitialPiles()
	ui.Println()
	ui.PrintNim(initial)
	observer := func(seat int, before nim.Piles, action nim.Action, after nim.Piles) {
		ui.Printf("\n%s (%s): %s\n\n", nim.PlayerNum(seat), matchPlayers[seat], action)
		ui.PrintNim(after)
	}
	result, err := players.PlayNim(globalCtx, initial, matchPlayers, observer)
	if err != nil {
		onQuit()
		klog.Exitf("Match interrupted: %+v", err)
	}
	winner := nim.PlayerFirst
	if result == evaluation.SecondWins {
		winner = nim.PlayerSecond
	}
	ui.PrintNimWinner(winner, nim.PlayerNum(humanSeat), true)
}

// createLearner from the configuration file and flags.
func createLearner() (*qlearning.Learner, error) {
	params := parameters.NewFromConfigString(*flagConfig)
	if *flagConfigFile != "" {
		fromFile, err := parameters.LoadYAML(*flagConfigFile)
		if err != nil {
			return nil, err
		}
		params = parameters.Merge(fromFile, params)
	}
	learner, err := qlearning.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		return nil, errors.Errorf("unknown Q-learning parameters %v", params)
	}
	return learner, nil
}

func chooseHumanSeat() (int, error) {
	switch strings.ToLower(*flagFirst) {
	case "human":
		return 0, nil
	case "ai":
		return 1, nil
	case "":
		return rand.IntN(2), nil
	default:
		return 0, errors.Errorf("invalid -first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
	}
}
