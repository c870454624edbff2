package feed

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Sample</title>
    <item>
      <title>First story</title>
      <description><![CDATA[<p>Something happened.</p>]]></description>
      <link>http://example.com/first</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 +0000</pubDate>
    </item>
    <item>
      <title>Second story</title>
    </item>
  </channel>
</rss>`

func TestParseExtractsItems(t *testing.T) {
	t.Parallel()

	items, err := Parse(sampleFeed)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "First story" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if !strings.Contains(first.Description, "Something happened") {
		t.Errorf("unexpected description: %q", first.Description)
	}
	if first.Link != "http://example.com/first" {
		t.Errorf("unexpected link: %q", first.Link)
	}
	if first.PublishedAt == nil {
		t.Fatal("expected a parsed publish date")
	}
	want := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("unexpected publish date: %v", first.PublishedAt)
	}
	if first.Raw == nil {
		t.Error("expected raw element handle")
	}
}

func TestParseMissingElementsYieldEmptyFields(t *testing.T) {
	t.Parallel()

	items, err := Parse(sampleFeed)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	second := items[1]
	if second.Description != "" || second.Link != "" {
		t.Errorf("expected empty fields, got description=%q link=%q", second.Description, second.Link)
	}
	if second.PublishedAt != nil {
		t.Errorf("expected absent publish date, got %v", second.PublishedAt)
	}
}

func TestParseFixesBareHrTags(t *testing.T) {
	t.Parallel()

	feedText := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Sample</title>
    <item>
      <title>With rule</title>
      <description>before<hr>after</description>
    </item>
  </channel>
</rss>`

	items, err := Parse(feedText)
	if err != nil {
		t.Fatalf("Parse should survive bare <hr> tags, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "With rule" {
		t.Errorf("unexpected title: %q", items[0].Title)
	}
}

func TestParseUnparsableDateIsAbsent(t *testing.T) {
	t.Parallel()

	feedText := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Sample</title>
    <item>
      <title>Bad date</title>
      <pubDate>sometime last tuesday-ish</pubDate>
    </item>
  </channel>
</rss>`

	items, err := Parse(feedText)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if items[0].PublishedAt != nil {
		t.Errorf("expected absent publish date, got %v", items[0].PublishedAt)
	}
}

func TestParseMalformedDocumentFails(t *testing.T) {
	t.Parallel()

	_, err := Parse("this is not a feed at all")
	if err == nil {
		t.Fatal("expected a parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestFixMarkup(t *testing.T) {
	t.Parallel()

	in := `a<hr>b<HR>c<hr >d<hr/>e`
	want := `a<hr/>b<hr/>c<hr/>d<hr/>e`
	if got := fixMarkup(in); got != want {
		t.Errorf("fixMarkup(%q) = %q, want %q", in, got, want)
	}
}
