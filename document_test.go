package readability

import (
	"encoding/json"
	"fmt"
	"os"
	fp "path/filepath"
	"strings"
	"testing"

	"github.com/go-shiori/dom"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const testPagesDir = "testdata/test-pages"

type expectedMetadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Readable bool   `json:"readable"`
}

func Test_testPages(t *testing.T) {
	testItems, err := os.ReadDir(testPagesDir)
	require.NoError(t, err, "failed to read test directory")

	for _, item := range testItems {
		if !item.IsDir() {
			continue
		}

		itemName := item.Name()
		t.Run(itemName, func(t *testing.T) {
			sourcePath := fp.Join(testPagesDir, itemName, "source.html")
			expectedPath := fp.Join(testPagesDir, itemName, "expected.html")
			expectedMetaPath := fp.Join(testPagesDir, itemName, "expected-metadata.json")

			doc, extractedDoc, err := extractSourceFile(sourcePath)
			require.NoError(t, err)

			expectedDoc, err := decodeExpectedFile(expectedPath)
			require.NoError(t, err)

			metadata, err := decodeExpectedMetadata(expectedMetaPath)
			require.NoError(t, err)

			if err = compareArticleContent(extractedDoc, expectedDoc); err != nil {
				t.Error(err)
			}

			assert.Equal(t, metadata.Title, doc.Title(), "title")
			assert.Equal(t, metadata.Author, doc.Author(), "author")
			assert.Equal(t, metadata.Readable, doc.Readable(), "readable")
		})
	}
}

func extractSourceFile(path string) (*Document, *html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	doc, err := FromReader(f, WithProber(nil))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract source: %w", err)
	}

	// Parse content into HTML
	content, err := html.Parse(strings.NewReader(doc.Content()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse content to HTML: %w", err)
	}

	return doc, content, nil
}

func decodeExpectedFile(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expected: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expected to HTML: %w", err)
	}
	return doc, nil
}

func decodeExpectedMetadata(path string) (expectedMetadata, error) {
	var result expectedMetadata

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("failed to open metadata: %w", err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&result)
	return result, err
}

func compareArticleContent(result, expected *html.Node) error {
	// Make sure number of nodes is same
	resultNodesCount := len(dom.Children(result))
	expectedNodesCount := len(dom.Children(expected))
	if resultNodesCount != expectedNodesCount {
		return fmt.Errorf("number of nodes is different, want %d got %d",
			expectedNodesCount, resultNodesCount)
	}

	resultNode := result
	expectedNode := expected
	for resultNode != nil && expectedNode != nil {
		resultExcerpt := getNodeExcerpt(resultNode)
		expectedExcerpt := getNodeExcerpt(expectedNode)

		// Compare tag name
		resultTagName := dom.TagName(resultNode)
		expectedTagName := dom.TagName(expectedNode)
		if resultTagName != expectedTagName {
			return fmt.Errorf("tag name is different\n"+
				"want    : %s (%s)\n"+
				"got     : %s (%s)",
				expectedTagName, expectedExcerpt,
				resultTagName, resultExcerpt)
		}

		// Compare attributes
		if len(resultNode.Attr) != len(expectedNode.Attr) {
			return fmt.Errorf("number of attributes is different\n"+
				"want    : %d (%s)\n"+
				"got     : %d (%s)",
				len(expectedNode.Attr), expectedExcerpt,
				len(resultNode.Attr), resultExcerpt)
		}

		for _, resultAttr := range resultNode.Attr {
			expectedAttrVal := dom.GetAttribute(expectedNode, resultAttr.Key)
			if resultAttr.Val != expectedAttrVal {
				return fmt.Errorf("attribute %s is different\n"+
					"want    : %s (%s)\n"+
					"got     : %s (%s)",
					resultAttr.Key, expectedAttrVal, expectedExcerpt,
					resultAttr.Val, resultExcerpt)
			}
		}

		// Compare text content
		resultText := trim(dom.TextContent(resultNode))
		expectedText := trim(dom.TextContent(expectedNode))

		comparator := diffmatchpatch.New()
		diffs := comparator.DiffMain(resultText, expectedText, false)

		if len(diffs) > 1 {
			return fmt.Errorf("text content is different\n"+
				"want  : %s\n"+
				"got   : %s\n"+
				"diffs : %s",
				expectedExcerpt, resultExcerpt,
				comparator.DiffPrettyText(diffs))
		}

		resultNode = nextElement(resultNode)
		expectedNode = nextElement(expectedNode)
	}

	if resultNode != nil || expectedNode != nil {
		return fmt.Errorf("number of elements is different")
	}
	return nil
}

// nextElement returns the element after node in depth-first order.
func nextElement(node *html.Node) *html.Node {
	if firstChild := dom.FirstElementChild(node); firstChild != nil {
		return firstChild
	}

	for ; node != nil; node = node.Parent {
		if sibling := dom.NextElementSibling(node); sibling != nil {
			return sibling
		}
	}
	return nil
}

func getNodeExcerpt(node *html.Node) string {
	outer := trim(dom.OuterHTML(node))
	if len(outer) < 120 {
		return outer
	}
	return outer[:120]
}

func TestFromString_degenerate(t *testing.T) {
	scenarios := []string{
		"",
		"   ",
		"plain text without markup",
		"<html></html>",
		"<p>",
		"<<<>>>",
		"<body><div></div></body>",
	}

	for _, src := range scenarios {
		doc, err := FromString(src, WithProber(nil))
		require.NoError(t, err, "%q", src)

		assert.NotPanics(t, func() {
			doc.Content()
			doc.Title()
			doc.Author()
			doc.PublishedTime()
		}, "%q", src)
		assert.True(t, strings.HasPrefix(doc.Content(), "<div>"), "%q: %s", src, doc.Content())
		assert.False(t, doc.Readable(), "%q", src)
	}
}

func TestFromDocument(t *testing.T) {
	text := strings.Repeat("Some article text. ", 20)
	src := `<html><head><title>Doc</title></head><body>` +
		`<div class="sidebar"><p>Links</p></div>` +
		`<div id="story"><p>` + text + `</p><div>inline only</div></div>` +
		`</body></html>`

	root := parseTestHTML(t, src)
	before := dom.OuterHTML(root)

	doc, err := FromDocument(root, WithProber(nil))
	require.NoError(t, err)
	assert.Contains(t, doc.Content(), "Some article text.")
	assert.Equal(t, "Doc", doc.Title())

	// The parsed document given by the caller is never changed.
	assert.Equal(t, before, dom.OuterHTML(root))

	doc, err = FromDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, "body", dom.TagName(doc.BestCandidate().Node))
}

func TestDocument_Content(t *testing.T) {
	thirtyChars := strings.Repeat("A", 30)
	doc, err := FromString(`<body><div class="article" id="x"><p>` + thirtyChars + `</p></div></body>`)
	require.NoError(t, err)

	assert.Equal(t, `<div><div><p>`+thirtyChars+`</p></div></div>`, doc.Content())
	assert.Equal(t, doc.Content(), doc.Content())
	assert.Equal(t, thirtyChars, doc.Text())
}

func TestDocument_Content_tags(t *testing.T) {
	src := `<body><div class="article"><p>` + strings.Repeat("Text ", 10) +
		`<a href="http://example.com" rel="nofollow">a link</a></p></div></body>`

	doc, err := FromString(src)
	require.NoError(t, err)
	assert.NotContains(t, doc.Content(), "<a")

	doc, err = FromString(src, WithTags("div", "p", "a"), WithAttributes("href"))
	require.NoError(t, err)
	assert.Contains(t, doc.Content(), `<a href="http://example.com">a link</a>`)
}

func TestDocument_Readable(t *testing.T) {
	long := `<body><div class="article"><p>` + strings.Repeat("Readable text. ", 20) + `</p></div></body>`
	short := `<body><div class="article"><p>` + strings.Repeat("Short text. ", 3) + `</p></div></body>`

	assert.True(t, IsReadable(strings.NewReader(long), WithProber(nil)))
	assert.False(t, IsReadable(strings.NewReader(short), WithProber(nil)))
	assert.True(t, IsReadable(strings.NewReader(short), WithProber(nil), WithRetryLength(20)))
	assert.False(t, IsReadable(strings.NewReader(long), WithBlacklist("p[")))

	assert.True(t, IsReadableDocument(parseTestHTML(t, long), WithProber(nil)))
}
