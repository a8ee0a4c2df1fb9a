package readability

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/dom"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Document is a scored HTML document. Scoring happens when the Document
// is created; content, images, title and author are extracted the first
// time they are asked for.
//
// A Document is not safe for concurrent use. Separate Documents don't
// share any state.
type Document struct {
	opts       Options
	html       *html.Node
	candidates *candidateSet
	best       Candidate

	contentNode *html.Node
	content     *string
	images      []string
	hasImages   bool
	query       *goquery.Document
}

// Options returns the options the document was created with.
func (d *Document) Options() Options {
	return d.opts
}

// Node returns the document tree as it was after scoring.
func (d *Document) Node() *html.Node {
	return d.html
}

// BestCandidate returns the node chosen as the root of the article.
func (d *Document) BestCandidate() Candidate {
	return d.best
}

// Candidates returns every scored node, best first.
func (d *Document) Candidates() []Candidate {
	return d.candidates.sorted()
}

// Content returns the sanitized article content.
func (d *Document) Content() string {
	if d.content == nil {
		article := d.assembleArticle(d.best)
		d.contentNode = d.sanitize(article)
		content := serialize(d.contentNode)
		d.content = &content
	}
	return *d.content
}

// Text returns the text of Content, with whitespace collapsed.
func (d *Document) Text() string {
	d.Content()
	return trim(dom.TextContent(d.contentNode))
}

// Readable reports whether the article text is at least RetryLength
// chars long. Calling code usually retries with looser options, or gives
// up on the page, when it's not.
func (d *Document) Readable() bool {
	return charCount(d.Text()) >= d.opts.RetryLength
}

// queryDocument wraps the tree for the metadata lookups.
func (d *Document) queryDocument() *goquery.Document {
	if d.query == nil {
		d.query = goquery.NewDocumentFromNode(d.html)
	}
	return d.query
}

// nodeFields describes a node for the debug log.
func nodeFields(node *html.Node) logrus.Fields {
	if node == nil {
		return nil
	}
	return logrus.Fields{
		"tag":   dom.TagName(node),
		"id":    dom.ID(node),
		"class": dom.ClassName(node),
	}
}
