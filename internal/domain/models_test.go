package domain

import (
	"testing"
	"time"

	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

func TestSnapshotFingerprint(t *testing.T) {
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	base := Snapshot{
		WatchlistID: "top",
		VsCurrency:  "usd",
		Market:      coingecko.Market{ID: "bitcoin", LastUpdated: updated},
		ObservedAt:  time.Now(),
	}

	fp := base.Fingerprint()
	if len(fp) != 40 {
		t.Fatalf("expected sha1 hex digest, got %q", fp)
	}

	sameCase := base
	sameCase.WatchlistID = " TOP "
	sameCase.VsCurrency = "USD"
	sameCase.ObservedAt = time.Now().Add(time.Hour)
	if sameCase.Fingerprint() != fp {
		t.Fatalf("fingerprint should ignore case, padding and observation time")
	}

	zoned := base
	zoned.Market.LastUpdated = updated.In(time.FixedZone("IST", 5*3600+1800))
	if zoned.Fingerprint() != fp {
		t.Fatalf("fingerprint should not depend on the timestamp's zone")
	}

	refreshed := base
	refreshed.Market.LastUpdated = updated.Add(time.Minute)
	if refreshed.Fingerprint() == fp {
		t.Fatalf("a newer last_updated must change the fingerprint")
	}

	other := base
	other.VsCurrency = "eur"
	if other.Fingerprint() == fp {
		t.Fatalf("currency must be part of the fingerprint")
	}
}
