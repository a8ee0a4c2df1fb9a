package readability

import (
	"fmt"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/htmlindex"
)

const (
	defaultRetryLength      = 250
	defaultMinTextLength    = 25
	defaultMinImageWidth    = 130
	defaultMinImageHeight   = 80
	defaultProbeConcurrency = 4
	defaultProbeTimeout     = 10 * time.Second
)

// Options is the configuration of a single extraction. Build one with
// DefaultOptions and Option functions; a Document never changes it.
type Options struct {
	// RetryLength is the minimum length of text content that calling code
	// should consider a successful extraction. See Document.Readable.
	RetryLength int `yaml:"retry_length" json:"retry_length"`
	// MinTextLength is the minimum length of a paragraph to be scored, and
	// the content length below which a conditionally cleaned node without
	// a single image is removed.
	MinTextLength int `yaml:"min_text_length" json:"min_text_length"`
	// RemoveUnlikelyCandidates removes elements whose class or id look like
	// comments, footers, sidebars and so on before scoring.
	RemoveUnlikelyCandidates bool `yaml:"remove_unlikely_candidates" json:"remove_unlikely_candidates"`
	// WeightClasses enables the class/id based weight.
	WeightClasses bool `yaml:"weight_classes" json:"weight_classes"`
	// CleanConditionally enables the density based cleaning of tables,
	// lists and divs in the article.
	CleanConditionally bool `yaml:"clean_conditionally" json:"clean_conditionally"`
	// RemoveEmptyNodes removes paragraphs without text from the article.
	RemoveEmptyNodes bool `yaml:"remove_empty_nodes" json:"remove_empty_nodes"`

	MinImageWidth      int      `yaml:"min_image_width" json:"min_image_width"`
	MinImageHeight     int      `yaml:"min_image_height" json:"min_image_height"`
	IgnoreImageFormats []string `yaml:"ignore_image_format" json:"ignore_image_format"`

	// Blacklist is a CSS selector whose matches are removed before scoring.
	Blacklist string `yaml:"blacklist" json:"blacklist"`
	// Whitelist is a CSS selector. When set, the body is replaced with only
	// the markup of its matches.
	Whitelist string `yaml:"whitelist" json:"whitelist"`

	// Tags are the tags kept by the final sanitization, with their
	// attributes stripped. Everything else is replaced by its text.
	Tags []string `yaml:"tags" json:"tags"`
	// Attributes are the attribute names kept on Tags.
	Attributes []string `yaml:"attributes" json:"attributes"`

	// Encoding forces the character encoding of the input, e.g. "gbk".
	Encoding string `yaml:"encoding" json:"encoding"`
	// GuessEncoding detects the encoding when Encoding is empty. When both
	// are unset the input is read as UTF-8.
	GuessEncoding bool `yaml:"guess_encoding" json:"guess_encoding"`

	// Prober looks up the size of images that don't declare one.
	Prober ImageProber `yaml:"-" json:"-"`
	// ProbeConcurrency is the max number of images probed at once.
	ProbeConcurrency int `yaml:"probe_concurrency" json:"probe_concurrency"`

	// Debug determines if the log should be printed or not. Default: false.
	Debug bool `yaml:"debug" json:"debug"`
	// Logger receives the debug log. Default: a logrus logger on stderr.
	Logger logrus.FieldLogger `yaml:"-" json:"-"`
}

// Option changes one field of Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		RetryLength:              defaultRetryLength,
		MinTextLength:            defaultMinTextLength,
		RemoveUnlikelyCandidates: true,
		WeightClasses:            true,
		CleanConditionally:       true,
		RemoveEmptyNodes:         true,
		MinImageWidth:            defaultMinImageWidth,
		MinImageHeight:           defaultMinImageHeight,
		IgnoreImageFormats:       []string{},
		Tags:                     []string{"div", "p"},
		GuessEncoding:            true,
		Prober:                   NewHTTPProber(defaultProbeTimeout),
		ProbeConcurrency:         defaultProbeConcurrency,
	}
}

func newOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate reports selectors and encodings that can't be used.
func (o Options) Validate() error {
	if _, err := compileSelector(o.Blacklist); err != nil {
		return fmt.Errorf("invalid blacklist: %w", err)
	}
	if _, err := compileSelector(o.Whitelist); err != nil {
		return fmt.Errorf("invalid whitelist: %w", err)
	}
	if o.Encoding != "" {
		if _, err := htmlindex.Get(o.Encoding); err != nil {
			return fmt.Errorf("invalid encoding %q: %w", o.Encoding, err)
		}
	}
	return nil
}

// compileSelector returns nil for an empty selector.
func compileSelector(selector string) (cascadia.Matcher, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, nil
	}
	return cascadia.ParseGroup(selector)
}

// WithOptions replaces all options at once, e.g. with a set decoded
// from a config file on top of DefaultOptions.
func WithOptions(options Options) Option {
	return func(o *Options) {
		*o = options
	}
}

func WithRetryLength(n int) Option {
	return func(o *Options) {
		o.RetryLength = n
	}
}

func WithMinTextLength(n int) Option {
	return func(o *Options) {
		o.MinTextLength = n
	}
}

func WithRemoveUnlikelyCandidates(b bool) Option {
	return func(o *Options) {
		o.RemoveUnlikelyCandidates = b
	}
}

func WithWeightClasses(b bool) Option {
	return func(o *Options) {
		o.WeightClasses = b
	}
}

func WithCleanConditionally(b bool) Option {
	return func(o *Options) {
		o.CleanConditionally = b
	}
}

func WithRemoveEmptyNodes(b bool) Option {
	return func(o *Options) {
		o.RemoveEmptyNodes = b
	}
}

func WithMinImageSize(width, height int) Option {
	return func(o *Options) {
		o.MinImageWidth = width
		o.MinImageHeight = height
	}
}

func WithIgnoreImageFormats(formats ...string) Option {
	return func(o *Options) {
		o.IgnoreImageFormats = append(o.IgnoreImageFormats, formats...)
	}
}

func WithBlacklist(selector string) Option {
	return func(o *Options) {
		o.Blacklist = selector
	}
}

func WithWhitelist(selector string) Option {
	return func(o *Options) {
		o.Whitelist = selector
	}
}

// WithTags replaces the tags kept by sanitization.
func WithTags(tags ...string) Option {
	return func(o *Options) {
		o.Tags = tags
	}
}

func WithAttributes(attributes ...string) Option {
	return func(o *Options) {
		o.Attributes = attributes
	}
}

func WithEncoding(label string) Option {
	return func(o *Options) {
		o.Encoding = label
	}
}

func WithGuessEncoding(b bool) Option {
	return func(o *Options) {
		o.GuessEncoding = b
	}
}

func WithProber(p ImageProber) Option {
	return func(o *Options) {
		o.Prober = p
	}
}

func WithProbeConcurrency(n int) Option {
	return func(o *Options) {
		o.ProbeConcurrency = n
	}
}

func WithDebug(b bool) Option {
	return func(o *Options) {
		o.Debug = b
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

var defaultLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	return l
}()

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return defaultLogger
}

func (o Options) logf(fields logrus.Fields, format string, args ...interface{}) {
	if !o.Debug {
		return
	}
	o.logger().WithFields(fields).Debugf(format, args...)
}

// ignoresFormat reports whether images with the given extension are rejected.
func (o Options) ignoresFormat(format string) bool {
	for _, f := range o.IgnoreImageFormats {
		if strings.EqualFold(strings.TrimPrefix(f, "."), format) {
			return true
		}
	}
	return false
}
