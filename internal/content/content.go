// Package content holds the static copy the engine samples from: apology
// tiers, chat responses and the page's display text.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPool indicates an apology tier without messages.
var ErrEmptyPool = errors.New("apology pool is empty")

// KeywordResponses maps one keyword to its candidate replies.
type KeywordResponses struct {
	Keyword   string   `yaml:"keyword"`
	Responses []string `yaml:"responses"`
}

// Feature is a card on the page.
type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Testimonial is a quote on the page.
type Testimonial struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

// Pools is the read-only content supplied at startup.
type Pools struct {
	Standard     []string           `yaml:"standard"`
	Existential  []string           `yaml:"existential"`
	Keywords     []KeywordResponses `yaml:"keywords"`
	Questions    []string           `yaml:"questions"`
	Generic      []string           `yaml:"generic"`
	Features     []Feature          `yaml:"features"`
	Testimonials []Testimonial      `yaml:"testimonials"`
}

// Validate checks that both apology tiers can be sampled.
func (pools Pools) Validate() error {
	if len(pools.Standard) == 0 {
		return fmt.Errorf("standard tier: %w", ErrEmptyPool)
	}
	if len(pools.Existential) == 0 {
		return fmt.Errorf("existential tier: %w", ErrEmptyPool)
	}
	return nil
}

// GenericFallback returns the generic chat pool followed by the standard tier.
func (pools Pools) GenericFallback() []string {
	out := make([]string, 0, len(pools.Generic)+len(pools.Standard))
	out = append(out, pools.Generic...)
	out = append(out, pools.Standard...)
	return out
}

// Load reads a YAML content file and overlays it on the defaults.
// Sections missing from the file keep their default content.
func Load(path string) (Pools, error) {
	pools := Default()
	if strings.TrimSpace(path) == "" {
		return pools, nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		return pools, fmt.Errorf("read content file: %w", err)
	}
	return Parse(rawData)
}

// Parse overlays YAML content on the defaults.
func Parse(rawData []byte) (Pools, error) {
	pools := Default()
	var fileData Pools
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return pools, fmt.Errorf("parse content yaml: %w", err)
	}
	applyOverrides(&pools, fileData)
	if err := pools.Validate(); err != nil {
		return Default(), err
	}
	return pools, nil
}

func applyOverrides(pools *Pools, fileData Pools) {
	if fileData.Standard != nil {
		pools.Standard = compact(fileData.Standard)
	}
	if fileData.Existential != nil {
		pools.Existential = compact(fileData.Existential)
	}
	if len(fileData.Keywords) > 0 {
		keywords := make([]KeywordResponses, 0, len(fileData.Keywords))
		for _, entry := range fileData.Keywords {
			keyword := strings.ToLower(strings.TrimSpace(entry.Keyword))
			responses := compact(entry.Responses)
			if keyword == "" || len(responses) == 0 {
				continue
			}
			keywords = append(keywords, KeywordResponses{Keyword: keyword, Responses: responses})
		}
		pools.Keywords = keywords
	}
	if len(fileData.Questions) > 0 {
		pools.Questions = compact(fileData.Questions)
	}
	if len(fileData.Generic) > 0 {
		pools.Generic = compact(fileData.Generic)
	}
	if len(fileData.Features) > 0 {
		pools.Features = fileData.Features
	}
	if len(fileData.Testimonials) > 0 {
		pools.Testimonials = fileData.Testimonials
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
