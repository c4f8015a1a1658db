package extract

// Aho-Corasick automaton over normalized text. Normalized text only holds
// [a-z0-9 ], so every node carries a 37 way transition table instead of 256.

const alphabet = 37

// sym maps a normalized byte to its column, -1 for anything else
func sym(b byte) int {
	switch {
	case b >= 'a' && b <= 'z':
		return int(b - 'a')
	case b >= '0' && b <= '9':
		return 26 + int(b-'0')
	case b == ' ':
		return 36
	}
	return -1
}

type acNode struct {
	trans  [alphabet]int32 // next state or -1
	fail   int32
	output []int32 // pattern ids ending here
}

type automaton struct {
	nodes []acNode
	lens  []int // pattern id -> byte length
}

func newNode() acNode {
	var n acNode
	for i := range n.trans {
		n.trans[i] = -1
	}
	return n
}

func newAutomaton() *automaton {
	return &automaton{nodes: []acNode{newNode()}}
}

// add inserts pat under id. Patterns with bytes outside the alphabet are skipped.
func (a *automaton) add(pat string, id int) {
	if pat == "" {
		return
	}
	for i := 0; i < len(pat); i++ {
		if sym(pat[i]) < 0 {
			return
		}
	}
	for len(a.lens) <= id {
		a.lens = append(a.lens, 0)
	}
	a.lens[id] = len(pat)

	state := int32(0)
	for i := 0; i < len(pat); i++ {
		c := sym(pat[i])
		nxt := a.nodes[state].trans[c]
		if nxt == -1 {
			nxt = int32(len(a.nodes))
			a.nodes[state].trans[c] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		state = nxt
	}
	a.nodes[state].output = append(a.nodes[state].output, int32(id))
}

// build computes failure links breadth first and merges outputs along them
func (a *automaton) build() {
	q := make([]int32, 0, len(a.nodes))
	for c := range alphabet {
		if s := a.nodes[0].trans[c]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}
	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for c := range alphabet {
			s := a.nodes[r].trans[c]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].trans[c] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].trans[c]; nxt != -1 && nxt != s {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}
			a.nodes[s].output = append(a.nodes[s].output, a.nodes[a.nodes[s].fail].output...)
		}
	}
}

// each calls fn(start, end, id) for every occurrence in text, end exclusive
func (a *automaton) each(text string, fn func(start, end, id int)) {
	state := int32(0)
	for i := 0; i < len(text); i++ {
		c := sym(text[i])
		if c < 0 {
			state = 0
			continue
		}
		for state != 0 && a.nodes[state].trans[c] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].trans[c]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].output {
			end := i + 1
			fn(end-a.lens[id], end, int(id))
		}
	}
}
