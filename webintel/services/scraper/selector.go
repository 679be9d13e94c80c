package scraper

import (
	"regexp"
)

type ExtractorKind string

const (
	KindStatic   ExtractorKind = "static"
	KindRendered ExtractorKind = "rendered"
	KindHosted   ExtractorKind = "hosted"
)

// Sites built on these need a real browser to produce their text.
var renderedPatterns = []*regexp.Regexp{
	// single page apps
	regexp.MustCompile(`(?i)react`),
	regexp.MustCompile(`(?i)vue`),
	regexp.MustCompile(`(?i)angular`),
	regexp.MustCompile(`(?i)svelte`),
	regexp.MustCompile(`(?i)next\.js`),
	regexp.MustCompile(`(?i)nuxt`),
	// e-commerce
	regexp.MustCompile(`(?i)shopify`),
	regexp.MustCompile(`(?i)magento`),
	regexp.MustCompile(`(?i)woocommerce`),
	regexp.MustCompile(`(?i)bigcommerce`),
}

// SelectExtractor picks the extraction strategy from the URL text alone.
func SelectExtractor(url string) ExtractorKind {
	for _, p := range renderedPatterns {
		if p.MatchString(url) {
			return KindRendered
		}
	}
	return KindStatic
}
