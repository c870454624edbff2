// Package news holds the normalization pipeline: feed text in, a clean,
// deduplicated, newest-first, optionally translated list of News out.
package news

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"globenews/internal/feed"
	"globenews/internal/image"
	"globenews/internal/metrics"
	"globenews/internal/reltime"
)

// News is the externally visible unit. Title and description are plain text,
// never markup.
type News struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
	Age         string `json:"age,omitempty"`
}

// Brand prefixes some sources prepend to every title. Every occurrence is
// stripped, not just a leading match.
var titlePrefixes = []string{
	"News24 | ",
	"BBC News - ",
	"BBC - ",
}

// CleanTitle removes known boilerplate prefixes and trims whitespace.
// Cleaning an already-clean title is a no-op.
func CleanTitle(title string) string {
	for _, p := range titlePrefixes {
		title = strings.ReplaceAll(title, p, "")
	}
	return strings.TrimSpace(title)
}

const maxDescriptionRunes = 200

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// NormalizeDescription strips markup and truncates at a word boundary at or
// before 200 runes, appending "..." when it had to cut.
func NormalizeDescription(raw string) string {
	text := stripMarkup(raw)
	runes := []rune(text)
	if len(runes) <= maxDescriptionRunes {
		return text
	}

	cut := -1
	for i := maxDescriptionRunes; i >= 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	if cut == -1 {
		// No whitespace boundary in reach, hard cut.
		cut = maxDescriptionRunes
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "..."
}

func stripMarkup(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))
	}
	return strings.TrimSpace(doc.Text())
}

// Translator sends one batch of strings and returns them translated, same
// order and count.
type Translator interface {
	Translate(ctx context.Context, texts []string) ([]string, error)
}

// Pipeline normalizes one feed document per call. Calls are independent;
// the clock-skew state lives and dies inside Normalize.
type Pipeline struct {
	translator Translator
	now        func() time.Time
}

// NewPipeline wires the translator; a nil translator disables translation.
func NewPipeline(translator Translator) *Pipeline {
	return &Pipeline{
		translator: translator,
		now:        time.Now,
	}
}

type workItem struct {
	news News
	ts   int64
}

// Normalize runs extraction, per-item cleanup, sorting, deduplication and
// one batched translation. It fails only when the document cannot be parsed;
// every later stage degrades instead of erroring.
func (p *Pipeline) Normalize(ctx context.Context, feedText string) ([]News, error) {
	rawItems, err := feed.Parse(feedText)
	if err != nil {
		return nil, err
	}

	now := p.now()
	var published []time.Time
	for _, it := range rawItems {
		if it.PublishedAt != nil {
			published = append(published, *it.PublishedAt)
		}
	}
	corrector := reltime.NewCorrector(now, published)

	work := make([]workItem, 0, len(rawItems))
	for _, it := range rawItems {
		metrics.Global.IncrementItemsExtracted()

		n := News{
			Title:       CleanTitle(it.Title),
			Description: NormalizeDescription(it.Description),
			URL:         strings.TrimSpace(it.Link),
			Image:       image.Resolve(it),
		}
		ts := int64(reltime.NoTimestamp)
		if it.PublishedAt != nil {
			n.Age, ts = corrector.Age(now, *it.PublishedAt)
		}
		work = append(work, workItem{news: n, ts: ts})
	}

	// Newest first; ties keep input order.
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].ts > work[j].ts
	})

	seen := map[string]struct{}{}
	result := make([]News, 0, len(work))
	for _, w := range work {
		if _, dup := seen[w.news.Title]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[w.news.Title] = struct{}{}
		result = append(result, w.news)
	}

	p.translate(ctx, result)
	return result, nil
}

// translate runs one batched request over all surviving items. Any failure
// keeps the original text; it never changes item count or order.
func (p *Pipeline) translate(ctx context.Context, items []News) {
	if p.translator == nil || len(items) == 0 {
		return
	}

	batch := lo.FlatMap(items, func(n News, _ int) []string {
		return []string{n.Title, n.Description}
	})

	translated, err := p.translator.Translate(ctx, batch)
	if err != nil {
		slog.Warn("translation failed, keeping original text", "err", err)
		metrics.Global.IncrementTranslationFailures()
		return
	}
	if len(translated) != len(batch) {
		slog.Warn("translator returned wrong batch size, keeping original text",
			"want", len(batch), "got", len(translated))
		metrics.Global.IncrementTranslationFailures()
		return
	}

	for i := range items {
		items[i].Title = translated[2*i]
		items[i].Description = translated[2*i+1]
	}
	metrics.Global.IncrementTranslationBatches()
}
