// Package pagerank ranks the pages of a corpus of HTML files by their importance, using the random surfer model.
//
// The surfer, with probability damping, follows one of the links of the current page (chosen uniformly), and otherwise
// jumps to any page of the corpus. Pages without links are treated as linking to every page of the corpus
// (including themselves).
//
// Ranks can be estimated by sampling (SampleRank) or by iterating to a fixed point (IterateRank).
package pagerank

import (
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/janpfeifer/classicai/internal/generics"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"k8s.io/klog/v2"
)

const (
	// DefaultDamping is the probability of following a link of the current page.
	DefaultDamping = 0.85

	// DefaultSamples is the number of pages visited by SampleRank.
	DefaultSamples = 10_000

	// DefaultTolerance is the largest change of any rank at which IterateRank stops.
	DefaultTolerance = 0.001

	// MaxIterations of IterateRank before giving up.
	MaxIterations = 100_000
)

// Corpus maps each page to the set of pages it links to. Links always point to pages in the corpus.
type Corpus map[string]generics.Set[string]

// Pages returns the sorted names of the pages.
func (c Corpus) Pages() []string {
	return slices.Collect(generics.SortedKeys(c))
}

var linkRegexp = regexp.MustCompile(`<a\s+(?:[^>]*?)href="([^"]*)"`)

// Crawl parses the "*.html" files in directory, and returns the corpus of the links among them.
// Links to the page itself, or to pages not in the directory, are dropped.
func Crawl(directory string) (Corpus, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to crawl directory %q", directory)
	}
	corpus := make(Corpus)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(directory, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read page %q", entry.Name())
		}
		links := generics.MakeSet[string]()
		for _, match := range linkRegexp.FindAllStringSubmatch(string(contents), -1) {
			links.Insert(match[1])
		}
		corpus[entry.Name()] = links.Sub(generics.SetWith(entry.Name()))
	}

	// Only include links to other pages in the corpus.
	for page, links := range corpus {
		for link := range links {
			if _, found := corpus[link]; !found {
				delete(links, link)
			}
		}
		if klog.V(2).Enabled() {
			klog.Infof("Crawled %q: links to %v", page, generics.Sorted(links))
		}
	}
	return corpus, nil
}

func validate(corpus Corpus, damping float64) error {
	if len(corpus) == 0 {
		return errors.New("pagerank: empty corpus")
	}
	if damping < 0 || damping > 1 {
		return errors.Errorf("pagerank: damping=%g must be in [0, 1]", damping)
	}
	for page, links := range corpus {
		for link := range links {
			if _, found := corpus[link]; !found {
				return errors.Errorf("pagerank: page %q links to %q, which is not in the corpus", page, link)
			}
		}
	}
	return nil
}

// transitionWeights returns the probability of moving from page to each of the pages, in the order given.
func transitionWeights(corpus Corpus, pages []string, page string, damping float64) []float64 {
	links := corpus[page]
	n := float64(len(pages))
	weights := make([]float64, len(pages))
	for ii, target := range pages {
		weights[ii] = (1 - damping) / n
		if len(links) == 0 {
			weights[ii] += damping / n
		} else if links.Has(target) {
			weights[ii] += damping / float64(len(links))
		}
	}
	return weights
}

// TransitionModel returns the probability distribution of the next page visited by the random surfer on page.
func TransitionModel(corpus Corpus, page string, damping float64) (map[string]float64, error) {
	if err := validate(corpus, damping); err != nil {
		return nil, err
	}
	if _, found := corpus[page]; !found {
		return nil, errors.Errorf("pagerank: page %q not in corpus", page)
	}
	pages := corpus.Pages()
	weights := transitionWeights(corpus, pages, page, damping)
	distribution := make(map[string]float64, len(pages))
	for ii, target := range pages {
		distribution[target] = weights[ii]
	}
	return distribution, nil
}

// SampleRank estimates the ranks by visiting n pages with the random surfer, starting from a random page.
// The rank of each page is the fraction of the visits it received, so they sum to 1.
//
// If rng is nil, one is created with a random seed.
func SampleRank(corpus Corpus, damping float64, n int, rng *rand.Rand) (map[string]float64, error) {
	if err := validate(corpus, damping); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Errorf("pagerank: number of samples %d must be > 0", n)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pages := corpus.Pages()
	transitions := make([]distuv.Categorical, len(pages))
	for ii, page := range pages {
		transitions[ii] = distuv.NewCategorical(transitionWeights(corpus, pages, page, damping), rng)
	}
	visits := make([]float64, len(pages))
	current := rng.IntN(len(pages))
	for range n {
		visits[current]++
		current = int(transitions[current].Rand())
	}
	floats.Scale(1/float64(n), visits)
	return toRanks(pages, visits), nil
}

// IterateRank calculates the ranks by iterating
//
//	PR(p) = (1 - damping) / N + damping * Σ_i PR(i) / NumLinks(i)
//
// over the pages i that link to p, until no rank changes more than tolerance. Ranks sum to 1.
func IterateRank(corpus Corpus, damping, tolerance float64) (map[string]float64, error) {
	if err := validate(corpus, damping); err != nil {
		return nil, err
	}
	if tolerance <= 0 {
		return nil, errors.Errorf("pagerank: tolerance=%g must be > 0", tolerance)
	}
	pages := corpus.Pages()
	n := len(pages)
	transitions := make([][]float64, n)
	for ii, page := range pages {
		transitions[ii] = transitionWeights(corpus, pages, page, damping)
	}

	ranks := make([]float64, n)
	for ii := range ranks {
		ranks[ii] = 1 / float64(n)
	}
	newRanks := make([]float64, n)
	for iteration := range MaxIterations {
		for target := range newRanks {
			newRanks[target] = 0
			for source := range ranks {
				newRanks[target] += ranks[source] * transitions[source][target]
			}
		}
		delta := floats.Distance(newRanks, ranks, math.Inf(1))
		ranks, newRanks = newRanks, ranks
		if delta < tolerance {
			klog.V(1).Infof("PageRank converged after %d iterations", iteration+1)
			floats.Scale(1/floats.Sum(ranks), ranks)
			return toRanks(pages, ranks), nil
		}
	}
	return nil, errors.Errorf("pagerank: ranks didn't converge to tolerance %g after %d iterations", tolerance, MaxIterations)
}

func toRanks(pages []string, values []float64) map[string]float64 {
	ranks := make(map[string]float64, len(pages))
	for ii, page := range pages {
		ranks[page] = values[ii]
	}
	return ranks
}
