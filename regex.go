package readability

import "regexp"

// All of the regular expressions in use within readability.
// Defined up here so we don't instantiate them repeatedly in loops.
var (
	rxUnlikelyCandidates   = regexp.MustCompile(`(?i)combx|comment|community|disqus|extra|foot|header|menu|remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup`)
	rxOkMaybeItsACandidate = regexp.MustCompile(`(?i)and|article|body|column|main|shadow`)
	rxPositive             = regexp.MustCompile(`(?i)article|body|content|entry|hentry|main|page|pagination|post|text|blog|story`)
	rxNegative             = regexp.MustCompile(`(?i)combx|comment|com-|contact|foot|footer|footnote|masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget`)
	rxReplaceBrs           = regexp.MustCompile(`(?i)(<br[^>]*>[ \n\r\t]*){2,}`)
	rxReplaceFonts         = regexp.MustCompile(`(?i)<(/?)font[^>]*>`)
	rxSentencePeriod       = regexp.MustCompile(`\.(\s|$)`)
	rxDuplicateBreaks      = regexp.MustCompile(`[\r\n\f]+`)
	rxSelfClosingVoid      = regexp.MustCompile(`<(area|base|br|col|embed|hr|img|input|keygen|link|meta|param|source|track|wbr)(\s[^>]*?)?/>`)
)

// Constants that used by readability.
var (
	replaceWithWhitespace = sliceToMap("br", "hr", "h1", "h2", "h3", "h4", "h5", "h6", "dl", "dd", "ol", "li", "ul", "address", "blockquote", "center")
	articleTags           = sliceToMap("div", "p")
)

// divToPElems are tag name prefixes: a <div> with a descendant whose tag
// starts with one of them (<a>, <abbr>, <article>, <picture>, <pre>...) is
// a real block and stays a <div>.
var divToPElems = []string{"a", "blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul"}

// tagBonus is the fixed score an element gets for its tag name when it
// first becomes a candidate.
var tagBonus = map[string]float64{
	"div":        5,
	"blockquote": 3,
	"form":       -3,
	"th":         -5,
}
