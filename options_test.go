package readability

import (
	"strings"
	"testing"

	"github.com/go-shiori/dom"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 250, opts.RetryLength)
	assert.Equal(t, 25, opts.MinTextLength)
	assert.True(t, opts.RemoveUnlikelyCandidates)
	assert.True(t, opts.WeightClasses)
	assert.True(t, opts.CleanConditionally)
	assert.True(t, opts.RemoveEmptyNodes)
	assert.Equal(t, 130, opts.MinImageWidth)
	assert.Equal(t, 80, opts.MinImageHeight)
	assert.Empty(t, opts.IgnoreImageFormats)
	assert.Equal(t, []string{"div", "p"}, opts.Tags)
	assert.Empty(t, opts.Attributes)
	assert.NotNil(t, opts.Prober)
	assert.NoError(t, opts.Validate())
}

func TestOptions_Validate(t *testing.T) {
	scenarios := map[string]Option{
		"blacklist": WithBlacklist("div["),
		"whitelist": WithWhitelist("a[href"),
		"encoding":  WithEncoding("klingon"),
	}

	for name, opt := range scenarios {
		opts := newOptions(opt)
		assert.Error(t, opts.Validate(), name)

		_, err := FromString("<p>text</p>", opt)
		assert.Error(t, err, name)
		_, err = FromDocument(nil, opt)
		assert.Error(t, err, name)
	}
}

func TestWithOptions(t *testing.T) {
	base := DefaultOptions()
	base.MinTextLength = 3
	base.Tags = []string{"div", "p", "a"}

	opts := newOptions(WithOptions(base), WithAttributes("href"))
	assert.Equal(t, 3, opts.MinTextLength)
	assert.Equal(t, []string{"div", "p", "a"}, opts.Tags)
	assert.Equal(t, []string{"href"}, opts.Attributes)
}

func TestBlacklist(t *testing.T) {
	text := strings.Repeat("Article text goes here. ", 5)
	src := `<body><div id="story"><p>` + text + `</p><p class="share">` + text + `</p></div></body>`

	doc, err := FromString(src, WithBlacklist(".share, #nothing"))
	require.NoError(t, err)
	assert.Nil(t, dom.QuerySelector(doc.Node(), ".share"))
	assert.Equal(t, 1, strings.Count(doc.Content(), "<p>"))
}

func TestBlacklist_wholeDocument(t *testing.T) {
	src := `<html><head><title>Gone</title></head><body><div class="article"><p>` +
		strings.Repeat("Article text goes here. ", 20) + `</p></div></body></html>`

	scenarios := map[string][]Option{
		"body":           {WithBlacklist("body")},
		"html":           {WithBlacklist("html")},
		"with whitelist": {WithBlacklist("body"), WithWhitelist(".article")},
	}

	for name, opts := range scenarios {
		opts = append(opts, WithProber(nil))

		assert.NotPanics(t, func() {
			doc, err := FromString(src, opts...)
			require.NoError(t, err, name)

			assert.Equal(t, "body", dom.TagName(doc.BestCandidate().Node), name)
			assert.Zero(t, doc.BestCandidate().Score, name)
			assert.NotContains(t, doc.Content(), "Article text", name)
			assert.False(t, doc.Readable(), name)
		}, name)

		assert.False(t, IsReadable(strings.NewReader(src), opts...), name)
	}
}

func TestWhitelist(t *testing.T) {
	text := strings.Repeat("Article text goes here. ", 5)
	src := `<body>` +
		`<div class="nav"><p>` + strings.Repeat("Navigation link text. ", 5) + `</p></div>` +
		`<div class="entry"><p>` + text + `</p></div>` +
		`</body>`

	doc, err := FromString(src, WithWhitelist(".entry"))
	require.NoError(t, err)
	assert.Nil(t, dom.QuerySelector(doc.Node(), ".nav"))
	assert.NotNil(t, dom.QuerySelector(doc.Node(), ".entry"))
	assert.NotContains(t, doc.Content(), "Navigation")
	assert.Contains(t, doc.Content(), "Article text")
}

func TestDebugLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	src := `<body><div id="story"><p>` + strings.Repeat("Some article text. ", 10) + `</p></div></body>`
	doc, err := FromString(src, WithLogger(logger))
	require.NoError(t, err)
	doc.Content()
	assert.Empty(t, hook.AllEntries())

	doc, err = FromString(src, WithLogger(logger), WithDebug(true))
	require.NoError(t, err)
	doc.Content()
	require.NotEmpty(t, hook.AllEntries())

	var found bool
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		if strings.HasPrefix(entry.Message, "best candidate") {
			found = true
			assert.Equal(t, "story", entry.Data["id"])
		}
	}
	assert.True(t, found)
}
