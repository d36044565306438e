// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listingeditor/internal/currency"
	"listingeditor/internal/markup"
	"listingeditor/internal/models"
)

var (
	// descriptionBlock is the last-resort description match on raw source.
	descriptionBlock = regexp.MustCompile(`(?is)<div[^>]+class="[^"]*description[^"]*"[^>]*>(.*?)</div>`)

	// excludedAsset matches host assets that are never product images.
	excludedAsset = regexp.MustCompile(`(?i)(logo|favicon|sprite|spacer|pixel\.gif|/icons?/|badge|ebaystatic\.com/.*/(?:icon|btn))`)
)

func (p *docParser) title() (string, string) {
	sel, name := markup.First(p.doc, markup.TitleFinders())
	if sel == nil {
		return "", ""
	}
	return markup.CleanText(sel.Text()), name
}

func (p *docParser) subtitle() (string, string) {
	var out string
	p.doc.Find(markup.SubtitleSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = markup.CleanText(s.Text())
		return out == ""
	})
	if out == "" {
		return "", ""
	}
	return out, "subtitle-selector"
}

type priceInfo struct {
	price string
	code  string
}

func (p *docParser) price() (priceInfo, string) {
	var info priceInfo
	found := false
	p.doc.Find(markup.PriceSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		price, code, ok := currency.ParsePrice(markup.CleanText(s.Text()))
		if !ok {
			if v, exists := s.Attr("content"); exists {
				price, code, ok = currency.ParsePrice(v)
			}
		}
		if ok {
			info = priceInfo{price: price, code: code}
			found = true
		}
		return !found
	})
	if !found {
		return priceInfo{}, ""
	}
	return info, "price-selector"
}

func (p *docParser) logo() (string, string) {
	var src string
	markup.LogoImages(p.doc).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src = strings.TrimSpace(s.AttrOr("src", ""))
		return src == ""
	})
	if src != "" {
		return src, "logo-img"
	}
	if svg := markup.LogoSVGs(p.doc).First(); svg.Length() > 0 {
		markupStr, err := goquery.OuterHtml(svg)
		if err == nil && markupStr != "" {
			return markupStr, "logo-svg"
		}
	}
	return "", ""
}

func (p *docParser) description() (string, string) {
	if block := markup.FollowingBlock(markup.DescriptionHeading(p.doc)); block != nil {
		if inner, err := block.Html(); err == nil && strings.TrimSpace(inner) != "" {
			return strings.TrimSpace(inner), "marker-heading"
		}
	}
	if container := markup.DescriptionContainer(p.doc); container.Length() > 0 {
		if inner, err := container.Html(); err == nil && strings.TrimSpace(inner) != "" {
			return strings.TrimSpace(inner), "description-selector"
		}
	}
	if m := descriptionBlock.FindStringSubmatch(p.raw); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1]), "regex"
	}
	return "", ""
}

// images prefers the gallery's main slots, then its thumbnails, then
// generic gallery markup, then every <img> in the document. URLs are
// de-duplicated and host assets skipped at every stage.
func (p *docParser) images() ([]models.ImageItem, string) {
	c := newImageCollector()

	for _, slot := range markup.MainImages(p.doc) {
		c.addFrom(imgOf(slot.Sel))
	}
	if c.len() > 0 {
		return c.items, "gallery-main"
	}

	for _, thumb := range markup.ThumbLabels(p.doc) {
		c.addFrom(imgOf(thumb.Sel))
	}
	if c.len() > 0 {
		return c.items, "gallery-thumbnails"
	}

	p.doc.Find(".gallery-item img, .product-gallery img, .gallery img, .thumbnails img").Each(func(_ int, s *goquery.Selection) {
		c.addFrom(s)
	})
	if c.len() > 0 {
		return c.items, "gallery-items"
	}

	p.doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if markup.IsLogoImage(s) || s.ParentsFiltered(markup.CompanyGridSelector).Length() > 0 {
			return
		}
		c.addFrom(s)
	})
	if c.len() > 0 {
		return c.items, "all-images"
	}
	return nil, ""
}

func imgOf(s *goquery.Selection) *goquery.Selection {
	if goquery.NodeName(s) == "img" {
		return s
	}
	return s.Find("img").First()
}

type imageCollector struct {
	seen  map[string]bool
	items []models.ImageItem
}

func newImageCollector() *imageCollector {
	return &imageCollector{seen: make(map[string]bool)}
}

func (c *imageCollector) len() int { return len(c.items) }

func (c *imageCollector) addFrom(img *goquery.Selection) {
	if img == nil || img.Length() == 0 {
		return
	}
	url := strings.TrimSpace(img.AttrOr("src", ""))
	if url == "" {
		url = strings.TrimSpace(img.AttrOr("data-src", ""))
	}
	if !allowedImage(url) || c.seen[url] {
		return
	}
	c.seen[url] = true
	c.items = append(c.items, models.ImageItem{
		ID:  models.NewItemID(),
		URL: url,
		Alt: strings.TrimSpace(img.AttrOr("alt", "")),
	})
}

func allowedImage(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:image/svg") {
		return false
	}
	return !excludedAsset.MatchString(url)
}

// specs scans spec tables and label/value blocks. Labels may repeat.
func (p *docParser) specs() ([]models.SpecItem, string) {
	var out []models.SpecItem
	var strategies []string

	tables := p.doc.Find(markup.SpecTableSelector)
	tables.Each(func(_ int, table *goquery.Selection) {
		before := len(out)
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if row.ParentsFiltered("thead").Length() > 0 {
				return
			}
			cells := row.ChildrenFiltered("td, th")
			if cells.Length() < 2 {
				return
			}
			if i == 0 && cells.Length() == cells.Filter("th").Length() {
				return
			}
			out = appendSpec(out, cells.Eq(0).Text(), cells.Eq(1).Text())
		})
		if len(out) > before && !contains(strategies, "table-rows") {
			strategies = append(strategies, "table-rows")
		}
	})

	markup.SpecItems(p.doc).Each(func(_ int, item *goquery.Selection) {
		if table := item.Closest("table"); table.Length() > 0 && table.IsSelection(tables) {
			return
		}
		label := item.Find(markup.SpecLabelSelector).First()
		value := item.Find(markup.SpecValueSelector).First()
		if label.Length() == 0 && value.Length() == 0 {
			kids := item.Children()
			if kids.Length() != 2 {
				return
			}
			label, value = kids.Eq(0), kids.Eq(1)
		}
		before := len(out)
		out = appendSpec(out, label.Text(), value.Text())
		if len(out) > before && !contains(strategies, "label-value") {
			strategies = append(strategies, "label-value")
		}
	})

	if len(out) == 0 {
		return nil, ""
	}
	return out, strings.Join(strategies, "+")
}

func appendSpec(out []models.SpecItem, label, value string) []models.SpecItem {
	label = strings.TrimSuffix(markup.CleanText(label), ":")
	value = markup.CleanText(value)
	if label == "" && value == "" {
		return out
	}
	return append(out, models.SpecItem{ID: models.NewItemID(), Label: label, Value: value})
}

// company reads the trust cards. A card's DOM id is kept as its item id so
// the generator can match the card back by id.
func (p *docParser) company() ([]models.CompanySection, string) {
	cards := markup.CompanyCards(p.doc)
	if cards.Length() == 0 {
		return nil, ""
	}
	out := make([]models.CompanySection, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		title := card.Find(markup.CardTitleSelector).First()
		text := card.Find(markup.CardTextSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			if title.Length() == 0 {
				return true
			}
			return s.Get(0) != title.Get(0) && !s.Find("*").IsSelection(title)
		}).First()

		svg := ""
		if icon := card.Find(markup.CardIconSelector).First(); icon.Length() > 0 {
			svg, _ = icon.Html()
		} else if s := card.Find("svg").First(); s.Length() > 0 {
			svg, _ = goquery.OuterHtml(s)
		}

		id := strings.TrimSpace(card.AttrOr("id", ""))
		if id == "" {
			id = models.NewItemID()
		}
		out = append(out, models.CompanySection{
			ID:          id,
			Title:       markup.CleanText(title.Text()),
			Description: markup.CleanText(text.Text()),
			SVG:         strings.TrimSpace(svg),
		})
	})
	if p.doc.Find(markup.CompanyGridSelector).Length() > 0 {
		return out, "components-grid"
	}
	return out, "legacy-cards"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
