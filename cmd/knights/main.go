// knights solves the "knights and knaves" puzzles by model checking: knights always tell the truth,
// knaves always lie, and each character is either one or the other.
//
// Use -v=1 to also print the knowledge base of each puzzle.
package main

import (
	"flag"

	"github.com/janpfeifer/classicai/internal/knights"
	"github.com/janpfeifer/classicai/internal/ui/cli"
	"k8s.io/klog/v2"
)

var (
	flagColor  = flag.Bool("color", true, "Use colors in the output.")
	flagPuzzle = flag.Int("puzzle", -1, "If >= 0, solve only the puzzle with the given index.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ui := cli.New(*flagColor, false)
	puzzles := knights.Puzzles()
	if *flagPuzzle >= len(puzzles) {
		klog.Exitf("Invalid -puzzle=%d, there are only %d puzzles", *flagPuzzle, len(puzzles))
	}
	for ii, puzzle := range puzzles {
		if *flagPuzzle >= 0 && ii != *flagPuzzle {
			continue
		}
		ui.PrintBanner(puzzle.Name)
		for _, statement := range puzzle.Statements {
			ui.Printf("  %s\n", statement)
		}
		if klog.V(1).Enabled() {
			ui.Printf("Knowledge: %s\n", puzzle.Knowledge.Formula())
		}
		entailed := knights.Solve(puzzle)
		if len(entailed) == 0 {
			ui.Println("    (nothing can be concluded)")
		}
		for _, symbol := range entailed {
			ui.Printf("    %s\n", symbol)
		}
		ui.Println()
	}
}
