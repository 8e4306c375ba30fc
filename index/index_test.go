package index

import (
	"bytes"
	"testing"
)

func buildTestIndex(t *testing.T, items []Item) *Index {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Build(&buf, items); err != nil {
		t.Fatalf("Build: %v", err)
	}
	ix, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return ix
}

func TestBuildOpenRoundTrip(t *testing.T) {
	items := []Item{
		{Key: "apple", Value: 10},
		{Key: "banana", Value: 20},
		{Key: "cherry", Value: 30},
	}
	ix := buildTestIndex(t, items)

	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}
	for i, want := range items {
		got := ix.entryAt(i)
		if got.Key != want.Key || got.Value != want.Value {
			t.Errorf("entryAt(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestBuildRejectsOutOfOrder(t *testing.T) {
	items := []Item{{Key: "banana", Value: 1}, {Key: "apple", Value: 2}}
	var buf bytes.Buffer
	_, err := Build(&buf, items)
	if err == nil {
		t.Fatal("Build: expected error for out-of-order keys")
	}
}

func TestBuildRejectsDuplicates(t *testing.T) {
	items := []Item{{Key: "apple", Value: 1}, {Key: "apple", Value: 2}}
	var buf bytes.Buffer
	_, err := Build(&buf, items)
	if err == nil {
		t.Fatal("Build: expected error for duplicate keys")
	}
}

func TestLookupExact(t *testing.T) {
	ix := buildTestIndex(t, []Item{
		{Key: "apple", Value: 1},
		{Key: "banana", Value: 2},
		{Key: "cherry", Value: 3},
	})

	results := ix.Lookup("banana", 20)
	if len(results) == 0 || results[0].Key != "banana" || results[0].Value != 2 {
		t.Fatalf("Lookup(banana) = %+v", results)
	}
}

func TestLookupExactFirst(t *testing.T) {
	ix := buildTestIndex(t, []Item{
		{Key: "cat", Value: 1},
		{Key: "cats", Value: 2},
		{Key: "cot", Value: 3},
	})

	results := ix.Lookup("cat", 20)
	if len(results) == 0 || results[0].Key != "cat" {
		t.Fatalf("Lookup(cat)[0] = %+v, want exact match first", results)
	}
}

func TestLookupFuzzy(t *testing.T) {
	ix := buildTestIndex(t, []Item{
		{Key: "hello", Value: 1},
		{Key: "hallo", Value: 2},
		{Key: "yellow", Value: 3},
	})

	results := ix.Lookup("hullo", 20)
	keys := map[string]bool{}
	for _, r := range results {
		keys[r.Key] = true
	}
	if !keys["hello"] || !keys["hallo"] {
		t.Fatalf("Lookup(hullo) = %+v, want hello and hallo within fuzziness", results)
	}
	if keys["yellow"] {
		t.Fatalf("Lookup(hullo) unexpectedly matched yellow: %+v", results)
	}
}

func TestLookupShortKeyNoFuzz(t *testing.T) {
	ix := buildTestIndex(t, []Item{
		{Key: "ab", Value: 1},
		{Key: "ac", Value: 2},
	})

	results := ix.Lookup("ab", 20)
	if len(results) != 1 || results[0].Key != "ab" {
		t.Fatalf("Lookup(ab) = %+v, want only exact match (fuzziness 0 for len<=2)", results)
	}
}

func TestLookupRespectsLimit(t *testing.T) {
	items := make([]Item, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, Item{Key: "test" + string(rune('0'+i)), Value: uint64(i)})
	}
	ix := buildTestIndex(t, items)

	// "test" is one edit away from every "testN" key, so an unbounded search would return all
	// 10; the limit must cap it.
	results := ix.Lookup("test", 3)
	if len(results) > 3 {
		t.Fatalf("Lookup ignored limit: got %d results, want <=3", len(results))
	}
}

func TestLookupNoMatch(t *testing.T) {
	ix := buildTestIndex(t, []Item{{Key: "apple", Value: 1}})
	results := ix.Lookup("zzzzzzzzzz", 20)
	if len(results) != 0 {
		t.Fatalf("Lookup(zzzzzzzzzz) = %+v, want no matches", results)
	}
}

func TestOpenRejectsTruncated(t *testing.T) {
	if _, err := Open([]byte{0x01, 0x02}); err == nil {
		t.Fatal("Open: expected error for truncated table")
	}
}
