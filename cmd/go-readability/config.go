package main

import (
	"fmt"
	"os"

	readability "github.com/go-shiori/go-readability-classic"
	yaml "gopkg.in/yaml.v3"
)

// loadOptions decodes the YAML file at path over the default options.
// Keys missing from the file keep their default value.
//
//	min_text_length: 40
//	ignore_image_format: [gif, svg]
//	blacklist: ".share, .newsletter"
//	tags: [div, p, a]
//	attributes: [href]
func loadOptions(path string) (readability.Options, error) {
	options := readability.DefaultOptions()
	if path == "" {
		return options, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return options, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &options); err != nil {
		return options, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := options.Validate(); err != nil {
		return options, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return options, nil
}
