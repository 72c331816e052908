// Package players provides a factory of AI players from configuration strings, for each of the games.
// It also allows player providers to register themselves.
package players

import (
	"fmt"
	"slices"
	"strings"

	"github.com/janpfeifer/classicai/internal/generics"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/pkg/errors"
)

// Player is anything that is able to play a game with states S and actions A.
type Player[S, A any] interface {
	// Play returns the action chosen for the given state. It returns false if it has no action to take
	// (e.g. the state is terminal, or a human player quit).
	Play(state S) (action A, ok bool)

	// String returns a description of the player, used in logs and in the UI.
	String() string
}

// Module creates new players from their parameters.
//
// NewPlayer must pop the parameters it uses from params: any parameters left are reported as unknown.
type Module[S, A any] interface {
	NewPlayer(params parameters.Params) (Player[S, A], error)
}

// ModuleFunc implements Module with a function.
type ModuleFunc[S, A any] func(params parameters.Params) (Player[S, A], error)

// NewPlayer implements Module.
func (fn ModuleFunc[S, A]) NewPlayer(params parameters.Params) (Player[S, A], error) {
	return fn(params)
}

// Registry of the modules for one game.
type Registry[S, A any] struct {
	game    string
	modules map[string]Module[S, A]

	// DefaultConfig is used if no configuration was given to New. The value may be changed by the
	// UI built.
	DefaultConfig string
}

// NewRegistry creates an empty registry for the named game.
func NewRegistry[S, A any](game, defaultConfig string) *Registry[S, A] {
	return &Registry[S, A]{
		game:          game,
		modules:       make(map[string]Module[S, A]),
		DefaultConfig: defaultConfig,
	}
}

var (
	// TicTacToe registry of players.
	TicTacToe = NewRegistry[tictactoe.Board, tictactoe.Action]("tic-tac-toe", "minimax")

	// Nim registry of players.
	Nim = NewRegistry[nim.Piles, nim.Action]("nim", "qlearning")
)

// Register a module, so it can be used by any of the front-ends.
// Registering a name twice replaces the previous module.
func (r *Registry[S, A]) Register(name string, module Module[S, A]) {
	r.modules[name] = module
}

// Names returns the sorted names of the registered modules.
func (r *Registry[S, A]) Names() []string {
	return slices.Collect(generics.SortedKeys(r.modules))
}

// New creates a new player given the configuration string.
//
// Args:
//
//	config: the module name followed by a colon (":"), followed by a comma-separated list of optional parameters
//		with optional values associated. E.g.: "minimax:randomness=0.5,seed=3".
//		If empty, the default is given by Registry.DefaultConfig.
//
// More details on the config are dependent on the module used.
func (r *Registry[S, A]) New(config string) (Player[S, A], error) {
	if config == "" {
		config = r.DefaultConfig
	}

	// Find moduleName.
	moduleName := config
	config = ""
	if moduleSplit := strings.Index(moduleName, ":"); moduleSplit != -1 {
		config = moduleName[moduleSplit+1:]
		moduleName = moduleName[:moduleSplit]
	}
	module, ok := r.modules[moduleName]
	if !ok {
		if len(r.modules) == 0 {
			return nil, errors.Errorf("no %s players registered. Perhaps you need to import _ \"github.com/janpfeifer/classicai/internal/players/default\" to your binary ?", r.game)
		}
		return nil, errors.Errorf("unknown %s player %q, registered players are %q", r.game, moduleName, r.Names())
	}

	params := parameters.NewFromConfigString(config)
	player, err := module.NewPlayer(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create %s player %q", r.game, moduleName)
	}
	if len(params) > 0 {
		return nil, errors.Errorf("unknown parameters %q for %s player %q",
			slices.Collect(generics.SortedKeys(params)), r.game, moduleName)
	}
	return player, nil
}

// String implements fmt.Stringer.
func (r *Registry[S, A]) String() string {
	return fmt.Sprintf("%s players %v", r.game, r.Names())
}
