package readability

import (
	"sort"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Candidate is a node that may contain the article, with its score.
type Candidate struct {
	Node  *html.Node
	Score float64
}

// candidateSet keeps candidates in the order they were found. Nodes are
// looked up by identity; the index of a candidate never changes.
type candidateSet struct {
	index map[*html.Node]int
	list  []Candidate
}

func newCandidateSet() *candidateSet {
	return &candidateSet{index: make(map[*html.Node]int)}
}

func (cs *candidateSet) get(node *html.Node) (Candidate, bool) {
	if i, ok := cs.index[node]; ok {
		return cs.list[i], true
	}
	return Candidate{}, false
}

// add adds score to the candidate of node, creating it with the initial
// score returned by seed on first sight.
func (cs *candidateSet) add(node *html.Node, seed func(*html.Node) float64, score float64) {
	i, ok := cs.index[node]
	if !ok {
		i = len(cs.list)
		cs.index[node] = i
		cs.list = append(cs.list, Candidate{Node: node, Score: seed(node)})
	}
	cs.list[i].Score += score
}

// sorted returns a copy of the candidates ordered by score. Ties keep
// the order they were found in.
func (cs *candidateSet) sorted() []Candidate {
	result := make([]Candidate, len(cs.list))
	copy(result, cs.list)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// classWeight gets an elements class/id weight. Uses regular
// expressions to tell if this element looks good or bad.
func classWeight(node *html.Node, weightClasses bool) int {
	if !weightClasses {
		return 0
	}

	weight := 0
	for _, value := range []string{dom.ClassName(node), dom.ID(node)} {
		if rxNegative.MatchString(value) {
			weight -= 25
		}
		if rxPositive.MatchString(value) {
			weight += 25
		}
	}
	return weight
}

// linkDensity gets the density of links as a percentage of the content.
// This is the amount of text that is inside a link divided by the total
// text in the node. A node without text has the maximal density of 1.
func linkDensity(node *html.Node) float64 {
	textLength := charCount(dom.TextContent(node))
	if textLength == 0 {
		return 1
	}

	var linkLength int
	for _, link := range dom.GetElementsByTagName(node, "a") {
		linkLength += charCount(dom.TextContent(link))
	}
	return float64(linkLength) / float64(textLength)
}

// initialScore is the score a node starts with when it becomes a candidate.
func (d *Document) initialScore(node *html.Node) float64 {
	return float64(classWeight(node, d.opts.WeightClasses)) + tagBonus[dom.TagName(node)]
}

// scoreParagraphs gives every paragraph and table cell a score based on
// its text, then adds that score to its parent and half of it to its
// grandparent.
func (d *Document) scoreParagraphs(minTextLength int) *candidateSet {
	candidates := newCandidateSet()

	for _, elem := range dom.QuerySelectorAll(d.html, "p, td") {
		parent := elem.Parent
		if parent == nil || parent.Type != html.ElementNode {
			continue
		}

		innerText := dom.TextContent(elem)
		textLength := charCount(innerText)

		// If this paragraph is less than 25 characters, don't even count it.
		if textLength < minTextLength {
			continue
		}

		contentScore := 1 + commaSegments(innerText) + min(textLength/100, 3)

		candidates.add(parent, d.initialScore, float64(contentScore))
		if grandParent := parent.Parent; grandParent != nil && grandParent.Type == html.ElementNode {
			candidates.add(grandParent, d.initialScore, float64(contentScore)/2)
		}
	}

	// Scale the final candidates score based on link density. Good content
	// should have a relatively small link density (5% or less) and be mostly
	// unaffected by this operation.
	for i := range candidates.list {
		candidate := &candidates.list[i]
		candidate.Score *= 1 - linkDensity(candidate.Node)
	}

	return candidates
}

// selectBestCandidate returns the highest scoring candidate. Without any
// candidate the whole body is used.
func (d *Document) selectBestCandidate() Candidate {
	sorted := d.candidates.sorted()

	d.opts.logf(nil, "top %d candidates:", min(len(sorted), 5))
	for _, candidate := range sorted[:min(len(sorted), 5)] {
		d.opts.logf(nodeFields(candidate.Node), "candidate with score %.4f", candidate.Score)
	}

	var best Candidate
	if len(sorted) > 0 {
		best = sorted[0]
	} else if bodies := dom.GetElementsByTagName(d.html, "body"); len(bodies) > 0 {
		best = Candidate{Node: bodies[0]}
	}

	d.opts.logf(nodeFields(best.Node), "best candidate with score %.4f", best.Score)
	return best
}
