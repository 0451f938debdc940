package gameid

import (
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	id := New()
	if err := Validate(id); err != nil {
		t.Fatalf("generated ID failed validation: %v", err)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewSortsByTime(t *testing.T) {
	var ids []string
	for range 10 {
		ids = append(ids, New())
		time.Sleep(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not time ordered: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.id)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate(%q) = %v, wantErr %v", tc.id, err, tc.wantErr)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	if len(alphabet) != 32 {
		t.Fatalf("alphabet has %d characters, want 32", len(alphabet))
	}
	seen := make(map[rune]bool)
	for _, c := range alphabet {
		if seen[c] {
			t.Errorf("duplicate character %c", c)
		}
		seen[c] = true
	}
	// Crockford's base32 drops the ambiguous letters.
	for _, c := range "ilou" {
		if strings.ContainsRune(alphabet, c) {
			t.Errorf("alphabet should not contain %c", c)
		}
	}
}

type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

func TestNewWithSource(t *testing.T) {
	a := NewWithSource(fixedSource{v: 7})
	b := NewWithSource(fixedSource{v: 7})

	if err := Validate(a); err != nil {
		t.Fatalf("ID failed validation: %v", err)
	}
	// Same random tail, timestamps may differ by a few characters.
	if a[6:] == "" || len(a) != len(b) {
		t.Fatalf("unexpected ID shapes %q %q", a, b)
	}
}
