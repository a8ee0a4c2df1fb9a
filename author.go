package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// authorStrategy looks for the author of a document in one place. It
// returns an empty string when there is nothing there.
type authorStrategy func(doc *goquery.Document) string

// authorStrategies are tried in order; the first name found wins.
var authorStrategies = []authorStrategy{
	metaDCCreator,
	vCardAuthor,
	relAuthor,
	idAuthor,
}

// Author returns the author of the document, or an empty string if
// there is none.
func (d *Document) Author() string {
	doc := d.queryDocument()
	for _, strategy := range authorStrategies {
		if author := strategy(doc); author != "" {
			return author
		}
	}
	return ""
}

// metaDCCreator reads the content of the Dublin Core creator meta tag.
//
//	<meta name="dc.creator" content="Finch - http://www.getfinch.com" />
func metaDCCreator(doc *goquery.Document) string {
	var author string
	doc.Find(`meta[name="dc.creator"]`).EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		content, exists := meta.Attr("content")
		if exists {
			author = strings.TrimSpace(content)
		}
		return !exists
	})
	return author
}

// vCardAuthor reads the formatted name of an hCard.
//
//	<span class="byline author vcard">By <cite class="fn">Austin Fonacier</cite></span>
func vCardAuthor(doc *goquery.Document) string {
	return firstText(doc, `[class*="vcard"] [class*="fn"]`)
}

// relAuthor reads the text of an author link.
//
//	<a rel="author" href="http://dbanksdesign.com">Danny Banks (rel)</a>
func relAuthor(doc *goquery.Document) string {
	return firstText(doc, `a[rel="author"]`)
}

func idAuthor(doc *goquery.Document) string {
	return firstText(doc, `[id="author"]`)
}

func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
