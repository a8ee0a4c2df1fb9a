package readability

import (
	"math"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Article is the assembled content of a document: a <div> holding copies
// of the best candidate and its related siblings. Cleaning an Article
// never changes the document it came from.
type Article struct {
	Node *html.Node

	// origin maps every copied node to the document node it copies.
	origin map[*html.Node]*html.Node
}

func newArticle() *Article {
	return &Article{
		Node:   dom.CreateElement("div"),
		origin: make(map[*html.Node]*html.Node),
	}
}

// appendCopy appends a deep copy of node to the article. Anything that
// isn't a <div> or <p> is copied as a <div>.
func (a *Article) appendCopy(node *html.Node) {
	clone := cloneWithOrigin(node, a.origin)
	if _, ok := articleTags[dom.TagName(clone)]; !ok {
		setNodeTag(clone, "div")
	}
	a.Node.AppendChild(clone)
}

// Origin returns the document node that node was copied from, or nil.
func (a *Article) Origin(node *html.Node) *html.Node {
	return a.origin[node]
}

// assembleArticle looks through the siblings of the best candidate for
// content that might also be related: preambles, content split by ads
// that we removed, etc.
func (d *Document) assembleArticle(best Candidate) *Article {
	article := newArticle()
	if best.Node == nil {
		return article
	}

	siblingScoreThreshold := math.Max(10, best.Score*0.2)
	siblings := []*html.Node{best.Node}
	if best.Node.Parent != nil {
		siblings = dom.Children(best.Node.Parent)
	}

	for _, sibling := range siblings {
		appendSibling := sibling == best.Node

		if candidate, ok := d.candidates.get(sibling); ok && candidate.Score >= siblingScoreThreshold {
			appendSibling = true
		}

		if !appendSibling && dom.TagName(sibling) == "p" {
			density := linkDensity(sibling)
			nodeContent := dom.TextContent(sibling)
			nodeLength := charCount(nodeContent)

			if nodeLength > 80 && density < 0.25 {
				appendSibling = true
			} else if nodeLength < 80 && density == 0 && rxSentencePeriod.MatchString(nodeContent) {
				appendSibling = true
			}
		}

		if appendSibling {
			d.opts.logf(nodeFields(sibling), "appending sibling to article")
			article.appendCopy(sibling)
		}
	}

	return article
}

// contentScore returns the score of the document node a copied article
// node came from, or 0 when it wasn't a candidate.
func (d *Document) contentScore(article *Article) func(*html.Node) float64 {
	return func(node *html.Node) float64 {
		if candidate, ok := d.candidates.get(article.Origin(node)); ok {
			return candidate.Score
		}
		return 0
	}
}
