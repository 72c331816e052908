// pagerank ranks the HTML pages in a directory, both by sampling the random surfer and by iteration.
//
// Example:
//
//	$ go run ./cmd/pagerank -plot=ranks.html corpus0
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/janpfeifer/classicai/internal/generics"
	"github.com/janpfeifer/classicai/internal/pagerank"
	"github.com/janpfeifer/classicai/internal/plots"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagDamping   = flag.Float64("damping", pagerank.DefaultDamping, "Probability of following a link of the current page.")
	flagSamples   = flag.Int("samples", pagerank.DefaultSamples, "Number of pages visited by the random surfer when sampling.")
	flagTolerance = flag.Float64("tolerance", pagerank.DefaultTolerance,
		"Iteration stops when no rank changes more than this.")
	flagSeed = flag.Uint64("seed", 0, "Seed for the sampling. If 0, a random seed is used.")
	flagPlot = flag.String("plot", "", "If set, writes an HTML page comparing the ranks of both methods to this file.")
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <corpus_directory>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	corpus := must.M1(pagerank.Crawl(flag.Arg(0)))
	klog.V(1).Infof("Crawled %d pages from %q", len(corpus), flag.Arg(0))

	var rng *rand.Rand
	if *flagSeed != 0 {
		rng = rand.New(rand.NewPCG(*flagSeed, 0))
	}
	sampled := must.M1(pagerank.SampleRank(corpus, *flagDamping, *flagSamples, rng))
	fmt.Printf("PageRank Results from Sampling (n = %d)\n", *flagSamples)
	printRanks(sampled)

	iterated := must.M1(pagerank.IterateRank(corpus, *flagDamping, *flagTolerance))
	fmt.Println("PageRank Results from Iteration")
	printRanks(iterated)

	if *flagPlot != "" {
		must.M(plotRanks(*flagPlot, sampled, iterated))
		fmt.Printf("Plot written to %q\n", *flagPlot)
	}
}

func printRanks(ranks map[string]float64) {
	for page, rank := range generics.SortedKeysAndValues(ranks) {
		fmt.Printf("  %s: %.4f\n", page, rank)
	}
}

// plotRanks writes one line per method, with the pages in the horizontal axis.
func plotRanks(filePath string, sampled, iterated map[string]float64) error {
	pages := slices.Collect(generics.SortedKeys(iterated))
	toValues := func(ranks map[string]float64) []float32 {
		return generics.SliceMap(pages, func(page string) float32 { return float32(ranks[page]) })
	}
	return plots.WriteFile(filePath, "PageRank", pages,
		plots.Series{Name: "Sampling", Values: toValues(sampled)},
		plots.Series{Name: "Iteration", Values: toValues(iterated)})
}
