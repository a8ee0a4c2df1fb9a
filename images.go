package readability

import (
	"context"
	nurl "net/url"
	"path"
	"strings"

	"github.com/go-shiori/dom"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Image is an <img> found in the document.
type Image struct {
	URL string
	// Format is the lowercased extension of the URL path, without dot.
	Format string
	Width  int
	Height int
}

// Images returns the URLs of the images in the article that are big
// enough and not of an ignored format, in document order and without
// duplicates. When the article has none, the whole document is searched.
//
// Images without a declared size are probed with Options.Prober; probes
// run concurrently and a failed probe only means the image is dropped.
func (d *Document) Images(ctx context.Context) []string {
	if !d.hasImages {
		d.images = d.getImages(ctx, d.best.Node)
		d.hasImages = true
	}
	return d.images
}

func (d *Document) getImages(ctx context.Context, scope *html.Node) []string {
	if scope == nil {
		return nil
	}

	seen := make(map[string]struct{})
	urls := []string{}
	for _, image := range d.collectImages(ctx, scope) {
		if !d.imageMeetsCriteria(image) {
			continue
		}
		if _, exist := seen[image.URL]; exist {
			continue
		}
		seen[image.URL] = struct{}{}
		urls = append(urls, image.URL)
	}

	if len(urls) == 0 && scope != d.html {
		return d.getImages(ctx, d.html)
	}
	return urls
}

// collectImages returns every <img> with a src below scope, with its
// size filled in from its attributes or, failing that, from a probe.
func (d *Document) collectImages(ctx context.Context, scope *html.Node) []Image {
	var images []Image
	for _, img := range dom.GetElementsByTagName(scope, "img") {
		src := dom.GetAttribute(img, "src")
		if src == "" {
			continue
		}

		images = append(images, Image{
			URL:    src,
			Format: imageFormat(src),
			Width:  leadingInt(dom.GetAttribute(img, "width")),
			Height: leadingInt(dom.GetAttribute(img, "height")),
		})
	}

	if d.opts.Prober == nil {
		return images
	}

	var g errgroup.Group
	g.SetLimit(max(d.opts.ProbeConcurrency, 1))
	for i := range images {
		image := &images[i]
		if !isHTTPURL(image.URL) || (image.Width != 0 && image.Height != 0) {
			continue
		}

		g.Go(func() error {
			width, height, err := d.opts.Prober.ProbeImage(ctx, image.URL)
			if err != nil {
				d.opts.logf(logrus.Fields{"url": image.URL}, "failed to probe image: %v", err)
				return nil
			}
			image.Width, image.Height = width, height
			return nil
		})
	}
	_ = g.Wait()

	return images
}

func (d *Document) imageMeetsCriteria(image Image) bool {
	if d.opts.ignoresFormat(image.Format) {
		return false
	}
	return image.Width >= d.opts.MinImageWidth && image.Height >= d.opts.MinImageHeight
}

// imageFormat returns the lowercased extension of the path of rawURL.
func imageFormat(rawURL string) string {
	p := rawURL
	if u, err := nurl.Parse(rawURL); err == nil {
		p = u.Path
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

func isHTTPURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
