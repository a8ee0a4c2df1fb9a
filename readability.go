// Package readability finds the main readable content of an HTML page,
// throwing away navigation, ads and the rest of the page chrome.
//
// It's a heuristic extractor in the spirit of the original Arc90
// readability script: every paragraph gives a score to its parent and
// grandparent, the best scoring node becomes the article, siblings that
// look related are merged into it, and the result is cleaned until only
// plain <div> and <p> markup is left.
//
//	doc, err := readability.FromReader(resp.Body)
//	if err != nil {
//		return err
//	}
//	fmt.Println(doc.Title(), doc.Author())
//	fmt.Println(doc.Content())
//	fmt.Println(doc.Images(ctx))
package readability

import (
	"io"

	"golang.org/x/net/html"
)

// IsReadable reports whether input has enough article content to be worth
// reading, see Document.Readable. It's useful if you only want to know
// whether a page is an article.
func IsReadable(input io.Reader, opts ...Option) bool {
	doc, err := FromReader(input, opts...)
	if err != nil {
		return false
	}
	return doc.Readable()
}

// IsReadableDocument is IsReadable for an already parsed document.
func IsReadableDocument(node *html.Node, opts ...Option) bool {
	doc, err := FromDocument(node, opts...)
	if err != nil {
		return false
	}
	return doc.Readable()
}
