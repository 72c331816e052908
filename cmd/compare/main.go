// compare plays many matches between two AIs, in parallel, and reports the results.
//
// Example:
//
//	$ go run ./cmd/compare -game=tictactoe -ai1=minimax -ai2=random -num_matches=1000
//	$ go run ./cmd/compare -game=nim -ai1=qlearning:episodes=20000 -ai2=random -plot=nim.html
//
// Flags can also be given in a YAML file with -config_file, with the flag names as keys. Flags given
// in the command line take precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/classicai/internal/evaluation"
	"github.com/janpfeifer/classicai/internal/generics"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/janpfeifer/classicai/internal/players"
	_ "github.com/janpfeifer/classicai/internal/players/default"
	"github.com/janpfeifer/classicai/internal/plots"
	"github.com/janpfeifer/classicai/internal/profilers"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/janpfeifer/classicai/internal/ui/cli"
	"github.com/janpfeifer/classicai/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagConfigFile = flag.String("config_file", "", "YAML file with values for the flags below.")
	flagGame       = flag.String("game", "tictactoe", "Game to play: tictactoe or nim.")
	flagAI1Config  = flag.String("ai1", "", "1st AI configuration. Default depends on the game.")
	flagAI2Config  = flag.String("ai2", "random", "2nd AI configuration.")
	flagNumMatches = flag.Int("num_matches", 100, "Number of matches to play.")
	flagPiles      = flag.String("piles", "1;3;5;7", "Initial piles for Nim matches. "+
		"Q-learning AIs are trained on these piles too, unless their configuration sets \"piles\".")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print board at each step. "+
		"Very verbose, and you probably want to set -parallelism=1.")
	flagPlot = flag.String("plot", "", "If set, writes an HTML page with the moving average of the results to this file.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

// config holds the values of the flags, after merging with the configuration file.
type config struct {
	game, ai1, ai2, plot    string
	numMatches, parallelism int
	piles                   nim.Piles
	printSteps              bool
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	onQuit := must.M1(profilers.Setup())
	defer onQuit()

	cfg := must.M1(loadConfig())
	var matchFn evaluation.MatchFn
	switch cfg.game {
	case "tictactoe":
		matchFn = must.M1(ticTacToeMatches(cfg))
	case "nim":
		matchFn = must.M1(nimMatches(cfg))
	default:
		onQuit()
		klog.Exitf("Unknown -game=%q, valid values are \"tictactoe\" or \"nim\"", cfg.game)
	}
	summary, err := evaluation.New(cfg.numMatches).
		WithParallelism(cfg.parallelism).
		WithProgress(func(s *evaluation.Summary) { fmt.Printf("\r%s\033[0K", s) }).
		Run(globalCtx, matchFn)
	fmt.Println()
	if err != nil {
		if globalCtx.Err() != nil {
			fmt.Printf("Interrupted: %s\n", globalCtx.Err())
		} else {
			onQuit()
			klog.Exitf("Failed to run matches: %+v", err)
		}
	}
	fmt.Printf("%s\n", summary)
	if cfg.plot != "" {
		must.M(plotSummary(cfg, summary))
		fmt.Printf("Plot written to %q\n", cfg.plot)
	}
}

// loadConfig merges the configuration file with the flags set in the command line.
func loadConfig() (cfg config, err error) {
	params := make(parameters.Params)
	if *flagConfigFile != "" {
		params, err = parameters.LoadYAML(*flagConfigFile)
		if err != nil {
			return
		}
	}
	flag.Visit(func(f *flag.Flag) {
		params[f.Name] = f.Value.String()
	})
	delete(params, "config_file")
	cfg.game, err = parameters.PopParamOr(params, "game", *flagGame)
	if err != nil {
		return
	}
	cfg.ai1, err = parameters.PopParamOr(params, "ai1", *flagAI1Config)
	if err != nil {
		return
	}
	cfg.ai2, err = parameters.PopParamOr(params, "ai2", *flagAI2Config)
	if err != nil {
		return
	}
	cfg.plot, err = parameters.PopParamOr(params, "plot", *flagPlot)
	if err != nil {
		return
	}
	cfg.numMatches, err = parameters.PopParamOr(params, "num_matches", *flagNumMatches)
	if err != nil {
		return
	}
	cfg.parallelism, err = parameters.PopParamOr(params, "parallelism", *flagParallelism)
	if err != nil {
		return
	}
	cfg.printSteps, err = parameters.PopParamOr(params, "print_steps", *flagPrintSteps)
	if err != nil {
		return
	}
	pilesDefault := parameters.NewFromConfigString("piles=" + *flagPiles)
	defaultPiles, err := parameters.PopIntsOr(pilesDefault, "piles", nil)
	if err != nil {
		return
	}
	var piles []int
	piles, err = parameters.PopIntsOr(params, "piles", defaultPiles)
	if err != nil {
		return
	}
	cfg.piles = piles
	if err = cfg.piles.Validate(); err != nil {
		return
	}
	// Other flags (e.g. klog's -v) are not part of the configuration.
	for key := range params {
		if flag.Lookup(key) == nil {
			err = errors.Errorf("unknown configuration %q in %q", key, *flagConfigFile)
			return
		}
	}
	if cfg.numMatches <= 0 {
		err = errors.Errorf("invalid number of matches %d", cfg.numMatches)
	}
	return
}

// createAIs using the registry of the game.
func createAIs[S, A any](registry *players.Registry[S, A], cfg config) (ais [2]players.Player[S, A], err error) {
	for aiIdx, aiConfig := range [2]string{cfg.ai1, cfg.ai2} {
		klog.V(1).Infof("Creating AI-%d from %q", aiIdx+1, aiConfig)
		ais[aiIdx], err = registry.New(aiConfig)
		if err != nil {
			return
		}
		fmt.Printf("AI-%d: %s\n", aiIdx+1, ais[aiIdx])
	}
	return
}

var (
	stepUI   = cli.New(false, false)
	muStepUI sync.Mutex
)

func ticTacToeMatches(cfg config) (evaluation.MatchFn, error) {
	ais, err := createAIs(players.TicTacToe, cfg)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, matchIdx int, seats [2]int) (evaluation.Result, error) {
		var observers []players.MoveObserver[tictactoe.Board, tictactoe.Action]
		if cfg.printSteps {
			observers = append(observers, func(seat int, before tictactoe.Board, action tictactoe.Action, after tictactoe.Board) {
				muStepUI.Lock()
				defer muStepUI.Unlock()
				stepUI.Printf("Match-%05d: AI-%d (%s) plays %s\n", matchIdx, seats[seat]+1, before.NextPlayer(), action)
				stepUI.PrintTicTacToe(after)
				stepUI.Println("------------------")
			})
		}
		result, _, err := players.PlayTicTacToe(ctx, [2]players.Player[tictactoe.Board, tictactoe.Action]{ais[seats[0]], ais[seats[1]]}, observers...)
		if err != nil && ctx.Err() != nil {
			// Interrupted, not an error of the match.
			return result, nil
		}
		return result, err
	}, nil
}

// nimAIConfig returns the Nim AI configuration with the match piles, if it is a Q-learning AI that
// doesn't set its own training piles.
func nimAIConfig(aiConfig string, piles nim.Piles) string {
	if aiConfig == "" {
		aiConfig = players.Nim.DefaultConfig
	}
	moduleName, params, _ := strings.Cut(aiConfig, ":")
	if moduleName != "qlearning" {
		return aiConfig
	}
	if _, found := parameters.NewFromConfigString(params)["piles"]; found {
		return aiConfig
	}
	pilesParam := "piles=" + strings.Join(generics.SliceMap([]int(piles), strconv.Itoa), ";")
	if params == "" {
		return moduleName + ":" + pilesParam
	}
	return aiConfig + "," + pilesParam
}

func nimMatches(cfg config) (evaluation.MatchFn, error) {
	cfg.ai1 = nimAIConfig(cfg.ai1, cfg.piles)
	cfg.ai2 = nimAIConfig(cfg.ai2, cfg.piles)
	ais, err := createAIs(players.Nim, cfg)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, matchIdx int, seats [2]int) (evaluation.Result, error) {
		var observers []players.MoveObserver[nim.Piles, nim.Action]
		if cfg.printSteps {
			observers = append(observers, func(seat int, before nim.Piles, action nim.Action, after nim.Piles) {
				muStepUI.Lock()
				defer muStepUI.Unlock()
				stepUI.Printf("Match-%05d: AI-%d %s\n", matchIdx, seats[seat]+1, action)
				stepUI.PrintNim(after)
				stepUI.Println("------------------")
			})
		}
		result, err := players.PlayNim(ctx, cfg.piles, [2]players.Player[nim.Piles, nim.Action]{ais[seats[0]], ais[seats[1]]}, observers...)
		if err != nil && ctx.Err() != nil {
			return result, nil
		}
		return result, err
	}, nil
}

// plotSummary writes the moving averages of the results to an HTML page.
func plotSummary(cfg config, summary *evaluation.Summary) error {
	n := len(summary.Averages)
	xLabels := make([]string, n)
	series := []plots.Series{
		{Name: "AI-1 wins: " + cfg.ai1, Values: make([]float32, n)},
		{Name: "AI-2 wins: " + cfg.ai2, Values: make([]float32, n)},
		{Name: "Draws", Values: make([]float32, n)},
	}
	for ii, stats := range summary.Averages {
		xLabels[ii] = strconv.Itoa(ii + 1)
		for r := range series {
			series[r].Values[ii] = stats[r]
		}
	}
	title := fmt.Sprintf("%s: moving average of results", cfg.game)
	return plots.WriteFile(cfg.plot, title, xLabels, series...)
}
