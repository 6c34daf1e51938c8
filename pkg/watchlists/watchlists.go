package watchlists

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

const (
	// MaxPerPage is the largest page size /coins/markets accepts.
	MaxPerPage   = 250
	MaxPages     = 20
	defaultPages = 1
)

// Watchlist is one market query the harvester polls.
type Watchlist struct {
	ID                    string   `json:"id" yaml:"id"`
	Name                  string   `json:"name" yaml:"name"`
	VsCurrency            string   `json:"vs_currency" yaml:"vs_currency"`
	IDs                   []string `json:"ids" yaml:"ids"`
	Category              string   `json:"category" yaml:"category"`
	Order                 string   `json:"order" yaml:"order"`
	PerPage               int      `json:"per_page" yaml:"per_page"`
	Pages                 int      `json:"pages" yaml:"pages"`
	Sparkline             *bool    `json:"sparkline" yaml:"sparkline"`
	PriceChangePercentage string   `json:"price_change_percentage" yaml:"price_change_percentage"`
	Enabled               *bool    `json:"enabled" yaml:"enabled"`
}

// IsEnabled treats a missing enabled flag as true.
func (w Watchlist) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// MarketRequest builds the /coins/markets request for the given 1-based page.
func (w Watchlist) MarketRequest(page int) coingecko.MarketRequest {
	req := coingecko.MarketRequest{
		VsCurrency:            w.VsCurrency,
		Category:              w.Category,
		Order:                 coingecko.Order(w.Order),
		PerPage:               w.PerPage,
		Page:                  page,
		PriceChangePercentage: coingecko.PriceChangePercentage(w.PriceChangePercentage),
	}
	if len(w.IDs) > 0 {
		req.IDs = append([]string(nil), w.IDs...)
	}
	if w.Sparkline != nil {
		req.Sparkline = coingecko.Bool(*w.Sparkline)
	}
	return req
}

// Registry is an immutable, validated set of watchlists.
type Registry struct {
	items []Watchlist
	index map[string]int
}

type fileLayout struct {
	Watchlists []Watchlist `json:"watchlists" yaml:"watchlists"`
}

// LoadRegistry reads and validates a YAML or JSON watchlists file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("watchlists file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlists file: %w", err)
	}

	layout, err := parseFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(layout.Watchlists)
}

// NewRegistry normalizes and validates items.
func NewRegistry(items []Watchlist) (*Registry, error) {
	if len(items) == 0 {
		return nil, errors.New("watchlists file contains no watchlists entries")
	}

	reg := &Registry{
		items: make([]Watchlist, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		w, err := normalize(item)
		if err != nil {
			return nil, fmt.Errorf("watchlist[%d]: %w", i, err)
		}
		if _, dup := reg.index[w.ID]; dup {
			return nil, fmt.Errorf("duplicate watchlist id %q", w.ID)
		}
		reg.index[w.ID] = len(reg.items)
		reg.items = append(reg.items, w)
	}
	return reg, nil
}

// All returns a copy of every watchlist in file order.
func (r *Registry) All() []Watchlist {
	if r == nil || len(r.items) == 0 {
		return nil
	}
	out := make([]Watchlist, len(r.items))
	copy(out, r.items)
	return out
}

// ByID looks a watchlist up by its id.
func (r *Registry) ByID(id string) (Watchlist, bool) {
	if r == nil {
		return Watchlist{}, false
	}
	i, ok := r.index[strings.TrimSpace(id)]
	if !ok {
		return Watchlist{}, false
	}
	return r.items[i], true
}

// Enabled returns the watchlists that should be polled.
func (r *Registry) Enabled() []Watchlist {
	if r == nil {
		return nil
	}
	var out []Watchlist
	for _, w := range r.items {
		if w.IsEnabled() {
			out = append(out, w)
		}
	}
	return out
}

type unmarshalFn func([]byte, any) error

func parseFile(data []byte, ext string) (fileLayout, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var layout fileLayout
		if err := d.fn(data, &layout); err != nil {
			errs = append(errs, fmt.Errorf("decode %s watchlists: %w", d.name, err))
			continue
		}
		return layout, nil
	}
	if len(errs) > 0 {
		return fileLayout{}, errors.Join(errs...)
	}
	return fileLayout{}, fmt.Errorf("watchlists file extension %q not recognized (expected YAML or JSON)", ext)
}

func normalize(w Watchlist) (Watchlist, error) {
	w.ID = strings.TrimSpace(w.ID)
	w.Name = strings.TrimSpace(w.Name)
	w.VsCurrency = strings.ToLower(strings.TrimSpace(w.VsCurrency))
	w.Category = strings.TrimSpace(w.Category)

	if w.ID == "" {
		return w, errors.New("id is required")
	}
	if w.Name == "" {
		w.Name = w.ID
	}
	if w.VsCurrency == "" {
		return w, fmt.Errorf("vs_currency is required for watchlist %q", w.ID)
	}

	ids := make([]string, 0, len(w.IDs))
	for _, id := range w.IDs {
		if id = strings.ToLower(strings.TrimSpace(id)); id != "" {
			ids = append(ids, id)
		}
	}
	w.IDs = ids

	if strings.TrimSpace(w.Order) != "" {
		order, err := coingecko.ParseOrder(w.Order)
		if err != nil {
			return w, fmt.Errorf("watchlist %q: %w", w.ID, err)
		}
		w.Order = string(order)
	} else {
		w.Order = ""
	}
	if strings.TrimSpace(w.PriceChangePercentage) != "" {
		window, err := coingecko.ParsePriceChangePercentage(w.PriceChangePercentage)
		if err != nil {
			return w, fmt.Errorf("watchlist %q: %w", w.ID, err)
		}
		w.PriceChangePercentage = string(window)
	} else {
		w.PriceChangePercentage = ""
	}

	if w.PerPage < 0 || w.PerPage > MaxPerPage {
		return w, fmt.Errorf("per_page for watchlist %q must be between 0 and %d", w.ID, MaxPerPage)
	}
	if w.Pages < 0 || w.Pages > MaxPages {
		return w, fmt.Errorf("pages for watchlist %q must be between 0 and %d", w.ID, MaxPages)
	}
	if w.Pages == 0 {
		w.Pages = defaultPages
	}
	return w, nil
}
