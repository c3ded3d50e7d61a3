package db

import (
	"strings"
	"testing"

	"wfm/internal/sqlinline"
)

func TestSplitMarker(t *testing.T) {
	marker, body, err := splitMarker(sqlinline.Schema)
	if err != nil {
		t.Fatalf("splitMarker(Schema): %v", err)
	}
	if marker != "3c3ce8b4-5d41-4feb-bbcb-e4fdb2c5b345" {
		t.Fatalf("marker = %q", marker)
	}
	if strings.Contains(body, "--sql") {
		t.Fatalf("body still carries the marker line")
	}
	if !strings.Contains(body, "create table if not exists users") {
		t.Fatalf("body lost the users table")
	}
}

func TestSplitMarkerRejects(t *testing.T) {
	for _, q := range []string{"", "select 1", "--sql \nselect 1", "--sql 3c3ce8b4-5d41-4feb-bbcb-e4fdb2c5b345\n  "} {
		if _, _, err := splitMarker(q); err == nil {
			t.Fatalf("splitMarker(%q) accepted", q)
		}
	}
}
