//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"os"
	fp "path/filepath"
	"time"

	readability "github.com/go-shiori/go-readability-classic"
	"github.com/sirupsen/logrus"
)

const testPagesDir = "testdata/test-pages"

var httpClient = &http.Client{Timeout: time.Minute}

func main() {
	// Get arguments
	var testName, sourceURL string
	switch len(os.Args) {
	case 2:
		testName = os.Args[1]
	case 3:
		testName = os.Args[1]
		sourceURL = os.Args[2]
	case 0, 1:
		logrus.Fatalln("need at least one argument")
	default:
		logrus.Fatalln("allowed max two arguments")
	}

	// Make sure URL is valid
	if sourceURL != "" {
		_, err := nurl.ParseRequestURI(sourceURL)
		if err != nil {
			logrus.Fatalf("URL %s is not valid: %v\n", sourceURL, err)
		}
	}

	// If test name is 'all', regenerate every existing test case
	if testName == "all" {
		dirItems, err := os.ReadDir(testPagesDir)
		if err != nil {
			logrus.Fatalf("failed to read test dir: %v\n", err)
		}

		for _, item := range dirItems {
			if !item.IsDir() || !fileExists(fp.Join(testPagesDir, item.Name(), "source.html")) {
				continue
			}

			if err = generateTestcase(item.Name(), ""); err != nil {
				logrus.Fatalf("failed to generate test for %s: %v\n", item.Name(), err)
			}
		}
		return
	}

	if err := generateTestcase(testName, sourceURL); err != nil {
		logrus.Fatalf("failed to generate test for %s: %v\n", testName, err)
	}
}

func generateTestcase(testName, sourceURL string) error {
	logrus.WithField("test", testName).Infoln("generating test")

	// Download the source when it's missing, or when an URL is given.
	testDir := fp.Join(testPagesDir, testName)
	sourcePath := fp.Join(testDir, "source.html")

	if !fileExists(sourcePath) || sourceURL != "" {
		logrus.WithField("url", sourceURL).Infoln("downloading source")
		if err := downloadWebPage(sourceURL, sourcePath); err != nil {
			return fmt.Errorf("failed to download source: %w", err)
		}
	}

	srcFile, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	doc, err := readability.FromReader(srcFile)
	if err != nil {
		return fmt.Errorf("failed to parse source: %w", err)
	}

	dstPath := fp.Join(testDir, "expected.html")
	if err = os.WriteFile(dstPath, []byte(doc.Content()), 0o644); err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	dstPath = fp.Join(testDir, "expected-metadata.json")
	if err = renderMetadataToFile(doc, dstPath); err != nil {
		return fmt.Errorf("failed to render metadata: %w", err)
	}

	return nil
}

func fileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

func downloadWebPage(srcURL string, dstPath string) error {
	if _, err := nurl.ParseRequestURI(srcURL); err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	resp, err := httpClient.Get(srcURL)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if err = os.MkdirAll(fp.Dir(dstPath), os.ModePerm); err != nil {
		return err
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func renderMetadataToFile(doc *readability.Document, filename string) error {
	metadata := map[string]interface{}{
		"title":    doc.Title(),
		"author":   doc.Author(),
		"readable": doc.Readable(),
	}

	bt, err := json.MarshalIndent(&metadata, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	return os.WriteFile(filename, bt, 0o644)
}
