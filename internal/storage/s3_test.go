// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew_Unconfigured(t *testing.T) {
	c, err := New("", "fsn1", "", "", "pub", "priv", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client without endpoint and credentials")
	}
}

func TestFileURL(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		publicURL string
		want      string
	}{
		{
			name:     "path style",
			endpoint: "https://fsn1.your-objectstorage.com/",
			want:     "https://fsn1.your-objectstorage.com/listings/exports/camera-2.html",
		},
		{
			name:      "public url wins",
			endpoint:  "https://fsn1.your-objectstorage.com",
			publicURL: "https://cdn.example.com/",
			want:      "https://cdn.example.com/exports/camera-2.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "fsn1", "key", "secret", "listings", "private", tt.publicURL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := c.FileURL(ExportKey("camera-2.html")); got != tt.want {
				t.Errorf("FileURL = %q, want %q", got, tt.want)
			}
			if c.publicBucket != "listings" || c.privateBucket != "private" {
				t.Errorf("buckets = %q/%q", c.publicBucket, c.privateBucket)
			}
		})
	}
}

func TestExportKey(t *testing.T) {
	if got := ExportKey("/camera-1.html"); got != "exports/camera-1.html" {
		t.Errorf("ExportKey = %q, want exports/camera-1.html", got)
	}
}

func TestSourceKey(t *testing.T) {
	id := uuid.MustParse("6f1c1a52-3a0e-4a7e-9d55-0c3c5c1c8a01")
	want := "sources/6f1c1a52-3a0e-4a7e-9d55-0c3c5c1c8a01/4.html"
	if got := SourceKey(id, 4); got != want {
		t.Errorf("SourceKey = %q, want %q", got, want)
	}
}
