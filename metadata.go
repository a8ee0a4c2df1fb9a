package readability

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// publishedTimeSources are the places a publication date is looked for,
// in order of trust.
var publishedTimeSources = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="dc.date"]`, "content"},
	{`meta[name="dcterms.created"]`, "content"},
	{`[itemprop="datePublished"]`, "content"},
	{`[itemprop="datePublished"]`, "datetime"},
	{`time[datetime]`, "datetime"},
}

// Title returns the text of the first <title> of the document, or an
// empty string if there's none.
func (d *Document) Title() string {
	return strings.TrimSpace(d.queryDocument().Find("title").First().Text())
}

// PublishedTime returns the publication date declared by the document,
// or nil when none can be found or parsed.
func (d *Document) PublishedTime() *time.Time {
	doc := d.queryDocument()
	for _, source := range publishedTimeSources {
		var published *time.Time
		doc.Find(source.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			published = d.getParsedDate(s.AttrOr(source.attr, ""))
			return published == nil
		})
		if published != nil {
			return published
		}
	}
	return nil
}

// getParsedDate tries to parse a date string using a list of known formats.
// Dates without a zone are read as UTC. If the date string can't be
// parsed, it will return nil.
func (d *Document) getParsedDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	date, err := dateparse.ParseIn(dateStr, time.UTC)
	if err != nil {
		d.opts.logf(nil, "failed to parse date %q: %v", dateStr, err)
		return nil
	}
	return &date
}
