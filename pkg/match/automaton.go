package match

// Aho-Corasick automaton over raw bytes. Construction is O(sum of
// pattern lengths), scanning is O(len(text) + matches) regardless of
// pattern count. Byte-level states keep offsets meaningful for callers
// that slice the original text.

const rootState = 0

type node struct {
	next map[byte]int32
	fail int32
	// out holds indexes into the pattern list for every pattern that
	// ends at this state, including patterns inherited through the
	// failure chain. Merging at build time keeps the scan loop free of
	// suffix-link walking.
	out []int32
}

// automaton is immutable after build and safe for concurrent scans.
type automaton struct {
	nodes    []node
	patterns []string // folded form when built case-insensitively
}

func buildAutomaton(patterns []string) *automaton {
	a := &automaton{
		nodes:    make([]node, 1, 64),
		patterns: patterns,
	}
	a.nodes[rootState].next = make(map[byte]int32)

	for idx, p := range patterns {
		a.insert(int32(idx), p)
	}
	a.linkFailures()
	return a
}

func (a *automaton) insert(patternIdx int32, pattern string) {
	state := int32(rootState)
	for i := 0; i < len(pattern); i++ {
		b := pattern[i]
		next, ok := a.nodes[state].next[b]
		if !ok {
			next = int32(len(a.nodes))
			a.nodes = append(a.nodes, node{next: make(map[byte]int32)})
			a.nodes[state].next[b] = next
		}
		state = next
	}
	a.nodes[state].out = append(a.nodes[state].out, patternIdx)
}

// linkFailures computes failure links breadth-first and merges the
// failure target's output set into each node, so every state knows all
// patterns ending at it.
func (a *automaton) linkFailures() {
	queue := make([]int32, 0, len(a.nodes))

	for _, next := range a.nodes[rootState].next {
		a.nodes[next].fail = rootState
		queue = append(queue, next)
	}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		for b, next := range a.nodes[state].next {
			queue = append(queue, next)

			fail := a.nodes[state].fail
			for fail != rootState {
				if _, ok := a.nodes[fail].next[b]; ok {
					break
				}
				fail = a.nodes[fail].fail
			}
			if target, ok := a.nodes[fail].next[b]; ok && target != next {
				a.nodes[next].fail = target
			} else {
				a.nodes[next].fail = rootState
			}

			failOut := a.nodes[a.nodes[next].fail].out
			if len(failOut) > 0 {
				a.nodes[next].out = append(a.nodes[next].out, failOut...)
			}
		}
	}
}

// scan walks text once and invokes emit for every occurrence of every
// pattern, overlapping occurrences included. start is the byte offset
// of the first byte of the occurrence.
func (a *automaton) scan(text string, emit func(patternIdx int32, start int)) {
	state := int32(rootState)

	for i := 0; i < len(text); i++ {
		b := text[i]

		for {
			if next, ok := a.nodes[state].next[b]; ok {
				state = next
				break
			}
			if state == rootState {
				break
			}
			state = a.nodes[state].fail
		}

		for _, patternIdx := range a.nodes[state].out {
			emit(patternIdx, i-len(a.patterns[patternIdx])+1)
		}
	}
}
