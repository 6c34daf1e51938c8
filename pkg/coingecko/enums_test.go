package coingecko

import (
	"strings"
	"testing"
)

func TestOrderWireStrings(t *testing.T) {
	want := map[Order]string{
		OrderGeckoDesc:     "gecko_desc",
		OrderGeckoAsc:      "gecko_asc",
		OrderMarketCapAsc:  "market_cap_asc",
		OrderMarketCapDesc: "market_cap_desc",
		OrderVolumeAsc:     "volume_asc",
		OrderVolumeDesc:    "volume_desc",
		OrderIDAsc:         "id_asc",
		OrderIDDesc:        "id_desc",
	}

	all := Orders()
	if len(all) != len(want) {
		t.Fatalf("Orders() returned %d variants, want %d", len(all), len(want))
	}
	seen := make(map[string]bool, len(all))
	for _, o := range all {
		s := o.String()
		if s != want[o] {
			t.Errorf("%v.String() = %q, want %q", o, s, want[o])
		}
		if s == "" || s != strings.ToLower(s) {
			t.Errorf("wire string %q must be non-empty lowercase", s)
		}
		if seen[s] {
			t.Errorf("wire string %q used twice", s)
		}
		seen[s] = true

		parsed, err := ParseOrder(strings.ToUpper(s))
		if err != nil || parsed != o {
			t.Errorf("ParseOrder(%q) = %v, %v", s, parsed, err)
		}
	}
}

func TestPriceChangePercentageWireStrings(t *testing.T) {
	want := []string{"1h", "24h", "7d", "14d", "30d", "200d", "1y"}

	all := PriceChangePercentages()
	if len(all) != len(want) {
		t.Fatalf("PriceChangePercentages() returned %d variants, want %d", len(all), len(want))
	}
	for i, p := range all {
		if p.String() != want[i] {
			t.Errorf("variant %d = %q, want %q", i, p, want[i])
		}
		parsed, err := ParsePriceChangePercentage(" " + want[i] + " ")
		if err != nil || parsed != p {
			t.Errorf("ParsePriceChangePercentage(%q) = %v, %v", want[i], parsed, err)
		}
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	if _, err := ParseOrder("market-cap-descending"); err == nil {
		t.Errorf("expected error for unknown order")
	}
	if _, err := ParsePriceChangePercentage("2w"); err == nil {
		t.Errorf("expected error for unknown window")
	}
	if Order("").Valid() || PriceChangePercentage("").Valid() {
		t.Errorf("empty values must not be valid")
	}
}

func TestOrdersReturnsCopy(t *testing.T) {
	all := Orders()
	all[0] = "mutated"
	if Orders()[0] != OrderGeckoDesc {
		t.Fatalf("Orders() exposed internal slice")
	}
}
