package readability

import (
	"bytes"
	"strings"

	"github.com/go-shiori/dom"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Cleaner is one pass of the sanitization pipeline. It takes the root of
// an article fragment and returns the new root, which is usually the same
// node but may be a text node when the whole fragment got flattened.
type Cleaner func(*html.Node) *html.Node

// Sanitize runs the cleaners over node, in order.
func Sanitize(node *html.Node, cleaners ...Cleaner) *html.Node {
	for _, clean := range cleaners {
		node = clean(node)
	}
	return node
}

// cleaners returns the sanitization pipeline for an article of d.
func (d *Document) cleaners(article *Article) []Cleaner {
	cleaners := []Cleaner{
		RemoveHeaders(),
		DeleteSelector("form, object, iframe, embed"),
	}

	if d.opts.RemoveEmptyNodes {
		cleaners = append(cleaners, EmptyParagraph())
	}

	if d.opts.CleanConditionally {
		cleaners = append(cleaners, Conditional("table, ul, div", d.contentScore(article), d.opts))
	}

	return append(cleaners, Whitelist(d.opts.Tags, d.opts.Attributes))
}

func (d *Document) sanitize(article *Article) *html.Node {
	return Sanitize(article.Node, d.cleaners(article)...)
}

// RemoveHeaders removes headers that are mostly links.
func RemoveHeaders() Cleaner {
	return func(node *html.Node) *html.Node {
		removeNodes(dom.QuerySelectorAll(node, "h1, h2, h3, h4, h5, h6"), func(header *html.Node) bool {
			return linkDensity(header) > 0.33
		})
		return node
	}
}

// DeleteSelector removes every element matching selector.
func DeleteSelector(selector string) Cleaner {
	return func(node *html.Node) *html.Node {
		removeNodes(dom.QuerySelectorAll(node, selector), nil)
		return node
	}
}

// EmptyParagraph removes <p> tags that have no text content. This will
// also remove p tags that contain only images.
func EmptyParagraph() Cleaner {
	return func(node *html.Node) *html.Node {
		removeNodes(dom.GetElementsByTagName(node, "p"), func(p *html.Node) bool {
			return strings.TrimSpace(dom.TextContent(p)) == ""
		})
		return node
	}
}

// Conditional cleans the elements matching selector if they look fishy.
// "Fishy" is an algorithm based on content length, classnames, link
// density, number of images & embeds, etc. contentScore returns the
// candidate score of an element, and may be nil.
func Conditional(selector string, contentScore func(*html.Node) float64, opts Options) Cleaner {
	return func(node *html.Node) *html.Node {
		for _, el := range dom.QuerySelectorAll(node, selector) {
			weight := classWeight(el, opts.WeightClasses)

			var score float64
			if contentScore != nil {
				score = contentScore(el)
			}

			if float64(weight)+score < 0 {
				opts.logf(conditionalFields(el, weight, score), "conditionally cleaned: score + content score was less than zero")
				removeNode(el)
				continue
			}

			if strings.Count(dom.TextContent(el), ",") >= 10 {
				continue
			}

			if reason := conditionalReason(el, weight, opts.MinTextLength); reason != "" {
				opts.logf(conditionalFields(el, weight, score), "conditionally cleaned: %s", reason)
				removeNode(el)
			}
		}
		return node
	}
}

// conditionalReason returns why el should be removed, or an empty string
// when it should stay. The first matching rule wins.
func conditionalReason(el *html.Node, weight int, minTextLength int) string {
	p := len(dom.GetElementsByTagName(el, "p"))
	img := len(dom.GetElementsByTagName(el, "img"))
	li := len(dom.GetElementsByTagName(el, "li")) - 100
	embed := len(dom.GetElementsByTagName(el, "embed"))
	input := len(dom.GetElementsByTagName(el, "input"))

	// For every img under a noscript tag discount one from the count to
	// avoid double counting.
	img -= countNestedTag(el, "noscript", "img")

	// Count the text length excluding any surrounding whitespace
	contentLength := charCount(strings.TrimSpace(dom.TextContent(el)))
	density := linkDensity(el)
	tag := dom.TagName(el)

	switch {
	case img > p && img > 1:
		return "too many images"
	case li > p && tag != "ul" && tag != "ol":
		return "more <li>s than <p>s"
	case input > p/3:
		return "less than 3x <p>s than <input>s"
	case contentLength < minTextLength && img != 1:
		return "too short a content length without a single image"
	case weight < 25 && density > 0.2:
		return "too many links for its weight"
	case weight >= 25 && density > 0.75:
		return "too many links for its weight"
	case (embed == 1 && contentLength < 75) || embed > 1:
		return "<embed>s with too short a content length, or too many <embed>s"
	}
	return ""
}

func conditionalFields(el *html.Node, weight int, score float64) logrus.Fields {
	fields := nodeFields(el)
	fields["weight"] = weight
	fields["score"] = score
	return fields
}

// Whitelist keeps the elements whose tag is in tags, with every attribute
// not in attributes removed, and replaces all other elements with their
// text. When the root itself isn't allowed the whole fragment becomes a
// single text node.
func Whitelist(tags, attributes []string) Cleaner {
	allowedTags := sliceToMap(tags...)
	allowedAttributes := sliceToMap(attributes...)

	return func(node *html.Node) *html.Node {
		if node.Type != html.ElementNode {
			return node
		}

		elements := append([]*html.Node{node}, dom.GetElementsByTagName(node, "*")...)
		for _, el := range elements {
			tag := dom.TagName(el)
			if _, ok := allowedTags[tag]; ok {
				attrs := el.Attr[:0]
				for _, attr := range el.Attr {
					if _, keep := allowedAttributes[attr.Key]; keep {
						attrs = append(attrs, attr)
					}
				}
				el.Attr = attrs
				continue
			}

			if el == node {
				return dom.CreateTextNode(dom.TextContent(el))
			}

			// Add whitespace instead of block elements,
			// so a<br>b will have a nice space between them.
			text := dom.TextContent(el)
			if _, ok := replaceWithWhitespace[tag]; ok {
				text = " " + text + " "
			}
			el.Parent.InsertBefore(dom.CreateTextNode(text), el)
			el.Parent.RemoveChild(el)
		}
		return node
	}
}

// serialize renders node, then collapses runs of line breaks. Void
// elements are written as <br>, never <br/>.
func serialize(node *html.Node) string {
	var buffer bytes.Buffer
	if err := html.Render(&buffer, node); err != nil {
		return ""
	}

	content := rxSelfClosingVoid.ReplaceAllString(buffer.String(), "<${1}${2}>")
	return rxDuplicateBreaks.ReplaceAllString(content, "\n")
}

func removeNode(node *html.Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}
