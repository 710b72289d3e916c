package core

import (
	"reflect"
	"testing"
)

func TestExtractURLsDistinctFirstOccurrence(t *testing.T) {
	text := `Found https://acme.com/jobs and https://news.example.com/round.
Also https://acme.com/jobs again, plus https://linkedin.com/in/jane.`
	got := ExtractURLs(text)
	want := []string{
		"https://acme.com/jobs",
		"https://news.example.com/round.",
		"https://linkedin.com/in/jane.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractURLsIdempotent(t *testing.T) {
	text := `see http://a.example/one and https://b.example/two and http://a.example/one`
	first := ExtractURLs(text)
	second := ExtractURLs(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not idempotent: %v vs %v", first, second)
	}
}

func TestExtractURLsStopsAtDelimiters(t *testing.T) {
	got := ExtractURLs(`{"url": "https://acme.com/page", "other": 'https://b.example/x', list: https://c.example/y,next`)
	want := []string{"https://acme.com/page", "https://b.example/x", "https://c.example/y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractURLsNone(t *testing.T) {
	if got := ExtractURLs("no links here, just text"); got != nil {
		t.Fatalf("expected nil for no matches, got %v", got)
	}
	if got := ExtractURLs(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestExtractURLsHTTPAndHTTPS(t *testing.T) {
	got := ExtractURLs("http://plain.example https://secure.example")
	if len(got) != 2 {
		t.Fatalf("expected both schemes matched, got %v", got)
	}
}
