// Package image finds a representative image URL for a feed item.
//
// Feeds put images in wildly different places, so Resolve walks an ordered
// list of extraction strategies and stops at the first hit.
package image

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"globenews/internal/feed"
)

type strategy func(feed.Item) string

var strategies = []strategy{
	fromEnclosureURL,
	fromMediaContent,
	fromMediaThumbnail,
	fromImageURLText,
	fromDescriptionImg,
	fromEncodedContentImg,
	fromEnclosureText,
	fromMediaGroup,
	fromImageImg,
}

// Resolve returns the item's image URL, or "" when no strategy matches.
func Resolve(item feed.Item) string {
	for _, s := range strategies {
		if u := s(item); u != "" {
			return rewriteCDN(u)
		}
	}
	return ""
}

func fromEnclosureURL(it feed.Item) string {
	if it.Raw == nil {
		return ""
	}
	if el := it.Raw.SelectElement("enclosure"); el != nil {
		return strings.TrimSpace(el.SelectAttrValue("url", ""))
	}
	return ""
}

func fromMediaContent(it feed.Item) string {
	if el := mediaChild(it, "content"); el != nil {
		return strings.TrimSpace(el.SelectAttrValue("url", ""))
	}
	return ""
}

func fromMediaThumbnail(it feed.Item) string {
	if el := mediaChild(it, "thumbnail"); el != nil {
		return strings.TrimSpace(el.SelectAttrValue("url", ""))
	}
	return ""
}

func fromImageURLText(it feed.Item) string {
	if it.Raw == nil {
		return ""
	}
	if el := it.Raw.FindElement("image/url"); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

var imgSrcPattern = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"'>]+)["']`)

func fromDescriptionImg(it feed.Item) string {
	return firstImgSrc(it.Description)
}

func fromEncodedContentImg(it feed.Item) string {
	return firstImgSrc(it.Content)
}

func fromEnclosureText(it feed.Item) string {
	if it.Raw == nil {
		return ""
	}
	if el := it.Raw.SelectElement("enclosure"); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func fromMediaGroup(it feed.Item) string {
	if it.Raw == nil {
		return ""
	}
	group := childInSpace(it.Raw, "group", isMediaSpace)
	if group == nil {
		return ""
	}
	if el := childInSpace(group, "content", isMediaSpace); el != nil {
		return strings.TrimSpace(el.SelectAttrValue("url", ""))
	}
	return ""
}

func fromImageImg(it feed.Item) string {
	if it.Raw == nil {
		return ""
	}
	if el := it.Raw.FindElement("image/img"); el != nil {
		return strings.TrimSpace(el.SelectAttrValue("src", ""))
	}
	return ""
}

func mediaChild(it feed.Item, tag string) *etree.Element {
	if it.Raw == nil {
		return nil
	}
	return childInSpace(it.Raw, tag, isMediaSpace)
}

// Namespace prefixes may arrive raw ("media") or resolved to the MRSS URI,
// depending on whether the feed declared them.
func isMediaSpace(space string) bool {
	return space == "media" || strings.Contains(space, "search.yahoo.com/mrss")
}

func childInSpace(el *etree.Element, tag string, inSpace func(string) bool) *etree.Element {
	for _, ch := range el.ChildElements() {
		if ch.Tag == tag && inSpace(ch.Space) {
			return ch
		}
	}
	return nil
}

func firstImgSrc(markup string) string {
	if markup == "" {
		return ""
	}
	if m := imgSrcPattern.FindStringSubmatch(markup); m != nil {
		return m[1]
	}
	return ""
}

// Known broadcaster CDNs serve tiny thumbnails in their feeds; swap the
// low-resolution path segment for the high-resolution one.
var cdnRewrites = []struct {
	host string
	from string
	to   string
}{
	{host: "bbci.co.uk", from: "ace/standard/240", to: "news/1536"},
}

func rewriteCDN(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	for _, r := range cdnRewrites {
		if u.Host == r.host || strings.HasSuffix(u.Host, "."+r.host) {
			return strings.Replace(raw, r.from, r.to, 1)
		}
	}
	return raw
}
