package players

import (
	"fmt"

	"github.com/janpfeifer/classicai/internal/searchers"
	"k8s.io/klog/v2"
)

// SearcherPlayer is a standard set up for an AI: it plays whatever the searcher finds best.
// It implements the Player interface.
type SearcherPlayer[S, A any] struct {
	Searcher searchers.Searcher[S, A]
	Name     string
}

// NewSearcherPlayer creates a Player from a Searcher.
func NewSearcherPlayer[S, A any](name string, searcher searchers.Searcher[S, A]) *SearcherPlayer[S, A] {
	return &SearcherPlayer[S, A]{Searcher: searcher, Name: name}
}

// Play implements Player.
func (p *SearcherPlayer[S, A]) Play(state S) (action A, ok bool) {
	var score float32
	action, ok, score, _ = p.Searcher.Search(state)
	if ok && klog.V(2).Enabled() {
		klog.Infof("%s: action %v, score %.2f", p, action, score)
	}
	return
}

// String implements Player.
func (p *SearcherPlayer[S, A]) String() string {
	return fmt.Sprintf("%s AI", p.Name)
}
