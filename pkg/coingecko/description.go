package coingecko

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultDescriptionLang = "en"

// DescriptionText returns the description for lang with the HTML markup stripped
// and whitespace collapsed. It falls back to English when lang has no entry.
func (c CoinInfo) DescriptionText(lang string) (string, error) {
	raw := c.Description[strings.ToLower(strings.TrimSpace(lang))]
	if strings.TrimSpace(raw) == "" {
		raw = c.Description[defaultDescriptionLang]
	}
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse description html: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
