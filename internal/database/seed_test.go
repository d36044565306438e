// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(context.Background(), testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only inserts into an empty table. We call it twice to verify
	// idempotency without clearing data other packages may rely on.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var presetCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM style_presets").Scan(&presetCount); err != nil {
		t.Fatalf("count style presets: %v", err)
	}
	if presetCount < 1 {
		t.Errorf("expected at least 1 style preset, got %d", presetCount)
	}

	var defaults int
	if err := db.QueryRow("SELECT COUNT(*) FROM style_presets WHERE is_default").Scan(&defaults); err != nil {
		t.Fatalf("count default presets: %v", err)
	}
	if defaults != 1 {
		t.Errorf("expected exactly 1 default preset, got %d", defaults)
	}
}
