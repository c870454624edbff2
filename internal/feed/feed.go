// Package feed turns raw RSS/Atom feed text into item records the
// normalization pipeline works on.
package feed

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"
	"github.com/mmcdole/gofeed"
)

// Item is one parsed feed entry. Raw points at the item's original XML
// element and is used only for image lookup; everything else reads the
// normalized fields.
type Item struct {
	Title       string
	Description string
	Content     string
	Link        string
	Published   string
	PublishedAt *time.Time
	Raw         *etree.Element
}

// ParseError means the document could not be parsed as a feed at all.
// There is no partial recovery beyond the <hr> fixup.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "feed: parse failed: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Some feeds ship bare <hr> tags inside description markup, which is not
// well-formed XML. They get rewritten to the self-closed form before parsing.
var hrPattern = regexp.MustCompile(`(?i)<hr\s*>`)

func fixMarkup(feedText string) string {
	return hrPattern.ReplaceAllString(feedText, "<hr/>")
}

// Parse extracts all items from feed text. Missing elements inside an item
// yield empty fields, never an error; an unparsable document fails the whole
// call with *ParseError.
func Parse(feedText string) ([]Item, error) {
	feedText = fixMarkup(feedText)

	parsed, err := gofeed.NewParser().ParseString(feedText)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	// Second pass keeps the original elements around, since gofeed does not
	// expose the raw XML the image strategies need. This pass is best-effort:
	// when it fails the items simply carry no raw element and image lookup
	// comes up empty.
	var raw []*etree.Element
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(feedText); err != nil {
		slog.Debug("raw element pass failed, images unavailable", "err", err)
	} else {
		raw = doc.FindElements("//item")
		if len(raw) == 0 {
			raw = doc.FindElements("//entry")
		}
	}

	items := make([]Item, 0, len(parsed.Items))
	for i, it := range parsed.Items {
		item := Item{
			Title:       it.Title,
			Description: it.Description,
			Content:     it.Content,
			Link:        it.Link,
			Published:   it.Published,
			PublishedAt: publishedAt(it),
		}
		if i < len(raw) {
			item.Raw = raw[i]
		}
		items = append(items, item)
	}
	return items, nil
}

func publishedAt(it *gofeed.Item) *time.Time {
	if it.PublishedParsed != nil {
		return it.PublishedParsed
	}
	if it.Published == "" {
		return nil
	}
	// gofeed gave up on the date format, try the kitchen-sink parser.
	t, err := dateparse.ParseAny(it.Published)
	if err != nil {
		return nil
	}
	return &t
}
