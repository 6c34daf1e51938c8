package watchlists

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "watchlists.yaml", `
watchlists:
  - id: top
    name: Top by market cap
    vs_currency: USD
    order: Market_Cap_Desc
    per_page: 50
    pages: 2
    sparkline: false
    price_change_percentage: 7D
  - id: majors
    vs_currency: eur
    ids: [" Bitcoin ", "", "ethereum"]
    enabled: false
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 watchlists, got %d", got)
	}

	top, ok := reg.ByID("top")
	if !ok {
		t.Fatalf("expected watchlist top")
	}
	if top.VsCurrency != "usd" || top.Order != "market_cap_desc" || top.PriceChangePercentage != "7d" {
		t.Fatalf("unexpected normalization: %+v", top)
	}

	q := top.MarketRequest(2).Query()
	want := "vs_currency=usd&order=market_cap_desc&per_page=50&page=2&sparkline=false&price_change_percentage=7d"
	if q != want {
		t.Fatalf("query mismatch\n got: %s\nwant: %s", q, want)
	}

	majors, _ := reg.ByID("majors")
	if majors.Name != "majors" {
		t.Fatalf("name should default to id, got %q", majors.Name)
	}
	if majors.Pages != 1 {
		t.Fatalf("pages should default to 1, got %d", majors.Pages)
	}
	if strings.Join(majors.IDs, ",") != "bitcoin,ethereum" {
		t.Fatalf("unexpected ids: %v", majors.IDs)
	}
	if q := majors.MarketRequest(1).Query(); q != "vs_currency=eur&ids=bitcoin,ethereum&page=1" {
		t.Fatalf("unexpected majors query %q", q)
	}

	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "top" {
		t.Fatalf("expected only top enabled, got %+v", enabled)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "watchlists.json", `{"watchlists":[{"id":"defi","vs_currency":"usd","category":"decentralized-finance-defi"}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	w, ok := reg.ByID(" defi ")
	if !ok {
		t.Fatalf("expected defi watchlist")
	}
	if w.Category != "decentralized-finance-defi" {
		t.Fatalf("unexpected category %q", w.Category)
	}
}

func TestMarketRequestCopiesIDs(t *testing.T) {
	w := Watchlist{VsCurrency: "usd", IDs: []string{"bitcoin"}}
	req := w.MarketRequest(1)
	req.IDs[0] = "changed"
	if w.IDs[0] != "bitcoin" {
		t.Fatalf("MarketRequest must not share the ids slice")
	}
}

func TestLoadRegistryRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing id": `
watchlists:
  - vs_currency: usd
`,
		"missing currency": `
watchlists:
  - id: a
`,
		"duplicate id": `
watchlists:
  - id: a
    vs_currency: usd
  - id: a
    vs_currency: eur
`,
		"unknown order": `
watchlists:
  - id: a
    vs_currency: usd
    order: price_desc
`,
		"unknown window": `
watchlists:
  - id: a
    vs_currency: usd
    price_change_percentage: 2h
`,
		"per_page too large": `
watchlists:
  - id: a
    vs_currency: usd
    per_page: 251
`,
		"too many pages": `
watchlists:
  - id: a
    vs_currency: usd
    pages: 21
`,
		"empty": `
watchlists: []
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "watchlists.yaml", content)
			if _, err := LoadRegistry(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadRegistryFileErrors(t *testing.T) {
	if _, err := LoadRegistry(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := writeFile(t, "watchlists.toml", "id = 1")
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
