package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability-classic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"
)

const index = `<!DOCTYPE HTML>
<html>
 <head>
  <meta charset="utf-8">
  <title>go-readability-classic</title>
 </head>
 <body>
 <form action="/" style="width:80%">
  <fieldset>
   <legend>Get readability content</legend>
   <p><label for="url">URL </label><input type="url" name="url" style="width:90%"></p>
   <p><input type="checkbox" name="metadata" value="true">only get the page's metadata</p>
  </fieldset>
  <p><input type="submit"></p>
 </form>
 </body>
</html>`

var log = logrus.New()

// settings are the flags shared by the CLI and the HTTP handler.
type settings struct {
	metadataOnly bool
	imagesOnly   bool
	pretty       bool
	timeout      time.Duration
	options      readability.Options
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "go-readability [flags] [source]",
		RunE:  rootCmdHandler,
		Short: "go-readability is parser to fetch readable content of a web page",
		Long: "go-readability is parser to fetch the readable content of a web page.\n" +
			"The source can be an url or an existing file in your storage.",
		SilenceUsage: true,
	}

	rootCmd.Flags().StringP("http", "l", "", "start the http server at the specified address")
	rootCmd.Flags().BoolP("metadata", "m", false, "only print the page's metadata")
	rootCmd.Flags().BoolP("images", "i", false, "only print the page's images")
	rootCmd.Flags().BoolP("pretty", "p", false, "indent the HTML content")
	rootCmd.Flags().StringP("config", "c", "", "YAML file with extraction options")
	rootCmd.Flags().BoolP("debug", "d", false, "log how the content is found")
	rootCmd.Flags().Duration("timeout", 30*time.Second, "timeout for fetching the page")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}

func rootCmdHandler(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	configPath, _ := cmd.Flags().GetString("config")
	options, err := loadOptions(configPath)
	if err != nil {
		return err
	}
	options.Debug = options.Debug || debug
	options.Logger = log

	s := settings{options: options}
	s.metadataOnly, _ = cmd.Flags().GetBool("metadata")
	s.imagesOnly, _ = cmd.Flags().GetBool("images")
	s.pretty, _ = cmd.Flags().GetBool("pretty")
	s.timeout, _ = cmd.Flags().GetDuration("timeout")

	// Start HTTP server
	httpListen, _ := cmd.Flags().GetString("http")
	if httpListen != "" {
		http.HandleFunc("/", s.httpHandler)
		log.Infoln("starting HTTP server at", httpListen)
		return http.ListenAndServe(httpListen, nil)
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	content, err := s.getContent(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(content)
	return nil
}

// httpHandler gives readability content
func (s settings) httpHandler(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		w.Write([]byte(index))
		return
	}

	metadataOnly, _ := strconv.ParseBool(r.URL.Query().Get("metadata"))
	s.metadataOnly = metadataOnly

	log.WithField("url", url).Infoln("process URL")
	content, err := s.getContent(r.Context(), url)
	if err != nil {
		log.WithError(err).Errorln("failed to process URL")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if metadataOnly {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write([]byte(content))
}

func (s settings) getContent(ctx context.Context, srcPath string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	srcReader, err := s.openSource(ctx, srcPath)
	if err != nil {
		return "", err
	}
	defer srcReader.Close()

	doc, err := readability.FromReader(srcReader, readability.WithOptions(s.options))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	// Make sure the page is readable
	if !doc.Readable() {
		log.WithField("source", srcPath).Warnln("the page has little readable content")
	}

	switch {
	case s.metadataOnly:
		metadata := map[string]interface{}{
			"title":    doc.Title(),
			"author":   doc.Author(),
			"images":   doc.Images(ctx),
			"readable": doc.Readable(),
		}
		if published := doc.PublishedTime(); published != nil {
			metadata["publishedTime"] = published.Format(time.RFC3339)
		}

		prettyJSON, err := json.MarshalIndent(&metadata, "", "    ")
		if err != nil {
			return "", fmt.Errorf("failed to write metadata: %w", err)
		}
		return string(prettyJSON), nil

	case s.imagesOnly:
		return strings.Join(doc.Images(ctx), "\n"), nil

	case s.pretty:
		return gohtml.Format(doc.Content()), nil
	}

	return doc.Content(), nil
}

// openSource opens a local file, or fetches the page when srcPath is an URL.
func (s settings) openSource(ctx context.Context, srcPath string) (io.ReadCloser, error) {
	if !isURL(srcPath) {
		srcFile, err := os.Open(srcPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open source file: %w", err)
		}
		return srcFile, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcPath, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to fetch web page: %w", err)
	}

	// Make sure content type is HTML
	if cp := resp.Header.Get("Content-Type"); cp != "" && !strings.Contains(cp, "html") {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("URL is not a HTML document: %s", cp)
	}

	return cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelOnClose releases the fetch context once the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

func isURL(path string) bool {
	url, err := nurl.ParseRequestURI(path)
	return err == nil && strings.HasPrefix(url.Scheme, "http")
}
