// Package grouping clusters checklist tasks by shared keywords using
// part-of-speech tagging. The capability depends on the prose model data
// loading successfully; callers must feature-detect it via Resolve.
package grouping

import (
	"sort"
	"strings"

	"github.com/tsawler/prose/v3"

	"checklistpp/internal/storage"
)

// Group is a named cluster of tasks, identified by their 1-based numbers.
type Group struct {
	Keyword string
	Numbers []int
}

// Grouper extracts keywords from task titles and clusters tasks that share
// a dominant keyword.
type Grouper struct {
	// MinGroupSize is the smallest cluster worth reporting.
	MinGroupSize int
}

// Resolve returns a Grouper when the tagging model is usable, or false when
// the capability is unavailable. Probing with a real document exercises the
// model load path once up front instead of failing per task later.
func Resolve() (*Grouper, bool) {
	if _, err := prose.NewDocument("probe"); err != nil {
		return nil, false
	}
	return &Grouper{MinGroupSize: 3}, true
}

// keywords returns the lower-cased noun-ish tokens of a task title.
func (g *Grouper) keywords(text string) []string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil
	}
	var out []string
	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		word := strings.ToLower(strings.Trim(tok.Text, ".,!?:;\"'"))
		if len(word) < 3 {
			continue
		}
		out = append(out, word)
	}
	return out
}

// GroupTasks clusters tasks by their most common shared keyword. Each task
// joins at most one group, the one for its highest-frequency keyword.
// Groups smaller than MinGroupSize are discarded.
func (g *Grouper) GroupTasks(tasks storage.Checklist) []Group {
	min := g.MinGroupSize
	if min < 2 {
		min = 2
	}

	taskWords := make([][]string, len(tasks))
	freq := map[string]int{}
	for i := range tasks {
		words := g.keywords(tasks[i].Text)
		taskWords[i] = words
		seen := map[string]bool{}
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				freq[w]++
			}
		}
	}

	byKeyword := map[string][]int{}
	for i, words := range taskWords {
		best := ""
		for _, w := range words {
			if freq[w] < 2 {
				continue
			}
			if best == "" || freq[w] > freq[best] || (freq[w] == freq[best] && w < best) {
				best = w
			}
		}
		if best != "" {
			byKeyword[best] = append(byKeyword[best], i+1)
		}
	}

	var groups []Group
	for kw, nums := range byKeyword {
		if len(nums) < min {
			continue
		}
		sort.Ints(nums)
		groups = append(groups, Group{Keyword: kw, Numbers: nums})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Numbers) != len(groups[j].Numbers) {
			return len(groups[i].Numbers) > len(groups[j].Numbers)
		}
		return groups[i].Keyword < groups[j].Keyword
	})
	return groups
}

// TagName returns the tag written back to a grouped task.
func TagName(keyword string) string {
	return "group:" + keyword
}
