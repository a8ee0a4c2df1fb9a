package readability

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// FromReader reads an HTML document from input and scores it. The
// returned Document extracts its content lazily.
func FromReader(input io.Reader, opts ...Option) (*Document, error) {
	options := newOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	src, err := decodeInput(raw, options)
	if err != nil {
		return nil, err
	}

	// Runs of <br> are paragraph breaks, and <font> is just a <span>.
	src = rxReplaceBrs.ReplaceAllString(src, "</p><p>")
	src = rxReplaceFonts.ReplaceAllString(src, "<${1}span>")

	doc, err := parseHTML(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %v", err)
	}

	return newDocument(doc, options), nil
}

// FromString is FromReader for an in-memory document.
func FromString(input string, opts ...Option) (*Document, error) {
	return FromReader(strings.NewReader(input), opts...)
}

// FromDocument scores an already parsed document. The document is
// cloned, so the original is kept untouched.
func FromDocument(doc *html.Node, opts ...Option) (*Document, error) {
	options := newOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	if doc == nil {
		return newDocument(nil, options), nil
	}
	return newDocument(dom.Clone(doc, true), options), nil
}

// parseHTML parses with scripting disabled, so the content of <noscript>
// is parsed as elements instead of raw text.
func parseHTML(src string) (*html.Node, error) {
	return html.ParseWithOptions(strings.NewReader(src), html.ParseOptionEnableScripting(false))
}

// emptyDocument is used in place of documents without a body, such as an
// empty input or a bare redirect.
func emptyDocument() *html.Node {
	doc, _ := parseHTML("<body></body>")
	return doc
}

func newDocument(doc *html.Node, opts Options) *Document {
	d := &Document{opts: opts}
	d.html = d.makeHTML(doc)

	if opts.RemoveUnlikelyCandidates {
		d.removeUnlikelyCandidates()
	}
	d.transformMisusedDivsIntoParagraphs()

	d.candidates = d.scoreParagraphs(opts.MinTextLength)
	d.best = d.selectBestCandidate()
	return d
}

// makeHTML prepares the parsed tree: junk nodes are removed, then the
// blacklist and whitelist selectors are applied.
func (d *Document) makeHTML(doc *html.Node) *html.Node {
	if doc == nil || len(dom.GetElementsByTagName(doc, "body")) == 0 {
		return emptyDocument()
	}

	removeComments(doc)
	removeNodes(dom.QuerySelectorAll(doc, "script, style"), nil)
	d.exclude(doc)

	// The blacklist may have removed the body itself.
	if len(dom.GetElementsByTagName(doc, "body")) == 0 {
		d.opts.logf(nil, "no body left after exclusion, using an empty document")
		return emptyDocument()
	}
	return doc
}

// exclude removes blacklisted elements, then replaces the body content
// with copies of whitelisted ones. Selectors were checked by Validate.
func (d *Document) exclude(doc *html.Node) {
	if blacklist, _ := compileSelector(d.opts.Blacklist); blacklist != nil {
		removeNodes(cascadia.QueryAll(doc, blacklist), nil)
	}

	whitelist, _ := compileSelector(d.opts.Whitelist)
	if whitelist == nil {
		return
	}

	var kept []*html.Node
	for _, node := range cascadia.QueryAll(doc, whitelist) {
		kept = append(kept, dom.Clone(node, true))
	}

	bodies := dom.GetElementsByTagName(doc, "body")
	if len(bodies) == 0 {
		return
	}

	body := bodies[0]
	for body.FirstChild != nil {
		body.RemoveChild(body.FirstChild)
	}
	for _, node := range kept {
		body.AppendChild(node)
	}
}

// removeComments find all comments in document then remove it.
func removeComments(doc *html.Node) {
	var comments []*html.Node
	var finder func(*html.Node)

	finder = func(node *html.Node) {
		if node.Type == html.CommentNode {
			comments = append(comments, node)
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			finder(child)
		}
	}

	finder(doc)
	removeNodes(comments, nil)
}

// removeUnlikelyCandidates removes elements whose class or id look like
// something that isn't content.
func (d *Document) removeUnlikelyCandidates() {
	removeNodes(dom.GetElementsByTagName(d.html, "*"), func(node *html.Node) bool {
		if tag := dom.TagName(node); tag == "html" || tag == "body" {
			return false
		}

		matchString := dom.ClassName(node) + " " + dom.ID(node)
		if rxUnlikelyCandidates.MatchString(matchString) &&
			!rxOkMaybeItsACandidate.MatchString(matchString) {
			d.opts.logf(nodeFields(node), "removing unlikely candidate: %q", matchString)
			return true
		}
		return false
	})
}

// transformMisusedDivsIntoParagraphs turns <div>s that don't contain
// other block elements into <p>s.
func (d *Document) transformMisusedDivsIntoParagraphs() {
	for _, div := range dom.GetElementsByTagName(d.html, "div") {
		if !hasDescendantTagPrefix(div, divToPElems) {
			d.opts.logf(nodeFields(div), "altering div to p")
			setNodeTag(div, "p")
		}
	}
}
