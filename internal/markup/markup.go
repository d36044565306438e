// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markup holds the selector vocabulary shared by the parser and the
// generator. Both sides locate listing fields through the same finders, so
// whatever the generator writes is exactly what the parser reads back.
package markup

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Finder is one entry of an ordered strategy list. Find returns an empty
// selection when the strategy does not apply to the document.
type Finder struct {
	Name string
	Find func(doc *goquery.Document) *goquery.Selection
}

// First runs finders in order and returns the first non-empty result
// together with the name of the strategy that produced it.
func First(doc *goquery.Document, finders []Finder) (*goquery.Selection, string) {
	for _, f := range finders {
		if sel := f.Find(doc); sel != nil && sel.Length() > 0 {
			return sel, f.Name
		}
	}
	return nil, ""
}

// Selector families.
const (
	PriceSelector       = ".price, .product-price, .price-value, .current-price, [itemprop=price]"
	SubtitleSelector    = ".product-subtitle, .subtitle, .product-tagline, .product-info h3"
	SpecTableSelector   = "table.specs-table, table.spec-table, table[class*=spec], .tech-specs table, .specifications table, .specs table, .technical-details table"
	SpecItemSelector    = ".spec-item, .spec-row, .specs-item"
	SpecLabelSelector   = ".spec-label, .label, dt"
	SpecValueSelector   = ".spec-value, .value, dd"
	TechSectionSelector = ".tech-specs, .tech-section, .technical-details, .specifications, #specifications, #tech-specs"
	CompanyGridSelector = ".components-grid"
	LegacyCardSelector  = ".company-info .info-card, .about-us .about-item, .why-us .why-item, .trust-section .trust-item, .feature-item"
	CardTitleSelector   = ".component-title, .card-title, .info-title, h3, h4, strong"
	CardTextSelector    = ".component-description, .component-text, .card-text, .info-text, p"
	CardIconSelector    = ".component-icon, .card-icon, .info-icon, .icon"
	HeadingSelector     = "h1, h2, h3, h4, h5, h6"

	// VoidSelector matches elements that cannot hold text. Microdata
	// carries values on <meta content>, which is written as an attribute.
	VoidSelector = "area, base, br, col, embed, hr, img, input, link, meta, source, track, wbr"
)

// descriptionSelectors are the description containers in priority order.
var descriptionSelectors = []string{
	".product-description",
	".description-content",
	".item-description",
	".description",
	"#description",
	"[itemprop=description]",
}

// DescriptionMarkers are lowercase words that identify a description
// heading.
var DescriptionMarkers = []string{"produktbeschreibung", "beschreibung", "description"}

// LegacyTitleMarkers are suffixes older listings appended to the product
// headline inside the product info block.
var LegacyTitleMarkers = []string{"| NEU", "- NEU", "(NEU)", "| NEW", "(NEW)", "OVP"}

// TechMarkers identify a technical section by its heading.
var TechMarkers = []string{"technische daten", "technical", "specification", "spezifikation"}

// TitleFinders lists the title strategies in priority order.
func TitleFinders() []Finder {
	return []Finder{
		{Name: "legacy-marker", Find: legacyTitle},
		{Name: "product-title", Find: firstWithText(".product-title")},
		{Name: "h1", Find: firstWithText("h1")},
		{Name: "product-info-h2", Find: firstWithText(".product-info h2")},
		{Name: "document-title", Find: firstWithText("title")},
	}
}

func legacyTitle(doc *goquery.Document) *goquery.Selection {
	return doc.Find(".product-info h1, .product-info h2, .product-info h3").FilterFunction(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		for _, m := range LegacyTitleMarkers {
			if strings.Contains(text, m) {
				return true
			}
		}
		return false
	}).First()
}

func firstWithText(selector string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return CleanText(s.Text()) != ""
		}).First()
	}
}

// Innermost drops elements that contain another element of the same set,
// so writes land on the leaf that actually displays the value.
func Innermost(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		inner := false
		sel.Each(func(_ int, other *goquery.Selection) {
			if other.Get(0) != s.Get(0) && s.Find("*").IsSelection(other) {
				inner = true
			}
		})
		return !inner
	})
}

// Prices returns every price element that displays text and does not wrap
// another one.
func Prices(doc *goquery.Document) *goquery.Selection {
	return Innermost(doc.Find(PriceSelector).Not(VoidSelector))
}

// PriceMetas returns microdata price tags (<meta itemprop="price">).
func PriceMetas(doc *goquery.Document) *goquery.Selection {
	return doc.Find(PriceSelector).Filter("meta")
}

// CurrencyMetas returns microdata currency tags.
func CurrencyMetas(doc *goquery.Document) *goquery.Selection {
	return doc.Find("meta[itemprop=priceCurrency]")
}

// LogoImages returns <img> elements that look like a shop logo.
func LogoImages(doc *goquery.Document) *goquery.Selection {
	return doc.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return IsLogoImage(s)
	})
}

// IsLogoImage reports whether an <img> is a logo by src, class or an
// ancestor's class.
func IsLogoImage(s *goquery.Selection) bool {
	src, _ := s.Attr("src")
	if strings.Contains(strings.ToLower(src), "logo") {
		return true
	}
	if hasLogoClass(s) {
		return true
	}
	return s.ParentsFiltered("[class]").FilterFunction(func(_ int, p *goquery.Selection) bool {
		return hasLogoClass(p)
	}).Length() > 0
}

// LogoSVGs returns inline <svg> logos: svgs inside a logo-ish container or
// carrying a logo class themselves.
func LogoSVGs(doc *goquery.Document) *goquery.Selection {
	return doc.Find("svg").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if hasLogoClass(s) {
			return true
		}
		// Nested svgs are covered by their outermost svg.
		if s.ParentsFiltered("svg").Length() > 0 {
			return false
		}
		return s.ParentsFiltered("[class]").FilterFunction(func(_ int, p *goquery.Selection) bool {
			return hasLogoClass(p)
		}).Length() > 0
	})
}

func hasLogoClass(s *goquery.Selection) bool {
	class, _ := s.Attr("class")
	return strings.Contains(strings.ToLower(class), "logo")
}

// DescriptionFinders lists the description containers in priority order.
// A specific class wins over a generic one wherever it sits in the page.
func DescriptionFinders() []Finder {
	finders := make([]Finder, 0, len(descriptionSelectors))
	for _, selector := range descriptionSelectors {
		finders = append(finders, Finder{Name: selector, Find: firstNonVoid(selector)})
	}
	return finders
}

func firstNonVoid(selector string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).Not(VoidSelector).First()
	}
}

// DescriptionContainer returns the highest priority description
// container, or an empty selection.
func DescriptionContainer(doc *goquery.Document) *goquery.Selection {
	if sel, _ := First(doc, DescriptionFinders()); sel != nil {
		return sel
	}
	return firstNonVoid(descriptionSelectors[0])(doc)
}

// DescriptionMetas returns microdata description tags.
func DescriptionMetas(doc *goquery.Document) *goquery.Selection {
	return doc.Find("meta[itemprop=description]")
}

// DescriptionHeading returns the first heading whose text carries a
// description marker. Headings inside company cards are ignored.
func DescriptionHeading(doc *goquery.Document) *goquery.Selection {
	return doc.Find(HeadingSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		if s.ParentsFiltered(CompanyGridSelector).Length() > 0 {
			return false
		}
		text := strings.ToLower(s.Text())
		for _, m := range DescriptionMarkers {
			if strings.Contains(text, m) {
				return true
			}
		}
		return false
	}).First()
}

// FollowingBlock returns the content block after a heading: its next
// element sibling, or the next sibling of its wrapper when the heading
// is the last child.
func FollowingBlock(heading *goquery.Selection) *goquery.Selection {
	if heading == nil || heading.Length() == 0 {
		return nil
	}
	if next := heading.Next(); next.Length() > 0 {
		return next
	}
	if next := heading.Parent().Next(); next.Length() > 0 {
		return next
	}
	return nil
}

// SpecTable returns the first specification table.
func SpecTable(doc *goquery.Document) *goquery.Selection {
	return doc.Find(SpecTableSelector).First()
}

// SpecItems returns repeatable label/value blocks.
func SpecItems(doc *goquery.Document) *goquery.Selection {
	return doc.Find(SpecItemSelector)
}

// TechSection returns a section that is clearly about technical data,
// either by class/id or by its heading text.
func TechSection(doc *goquery.Document) *goquery.Selection {
	if sec := doc.Find(TechSectionSelector).First(); sec.Length() > 0 {
		return sec
	}
	heading := doc.Find(HeadingSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(s.Text())
		for _, m := range TechMarkers {
			if strings.Contains(text, m) {
				return true
			}
		}
		return false
	}).First()
	if heading.Length() == 0 {
		return heading
	}
	return heading.Parent()
}

// CompanyCards returns the "why buy from us" cards: children of the
// components grid, or legacy card classes when no grid exists.
func CompanyCards(doc *goquery.Document) *goquery.Selection {
	cards := doc.Find(CompanyGridSelector).First().Children().FilterFunction(isCard)
	if cards.Length() > 0 {
		return cards
	}
	return doc.Find(LegacyCardSelector).FilterFunction(isCard)
}

func isCard(_ int, s *goquery.Selection) bool {
	return s.Find(CardTitleSelector).Length() > 0 || s.Find(CardTextSelector).Length() > 0
}

// DescriptionAnchors lists the sections a new description section may be
// inserted before, in preference order.
func DescriptionAnchors() []Finder {
	return []Finder{
		{Name: "product-header", Find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(".product-header, header").First()
		}},
		{Name: "gallery", Find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(".product-gallery, .gallery, .gallery-container").First()
		}},
		{Name: "tech-section", Find: TechSection},
		{Name: "company-section", Find: func(doc *goquery.Document) *goquery.Selection {
			grid := doc.Find(CompanyGridSelector).First()
			if grid.Length() == 0 {
				return doc.Find(".company-info, .about-us, .company-section").First()
			}
			if sec := grid.Closest("section"); sec.Length() > 0 {
				return sec
			}
			return grid
		}},
	}
}

// CleanText collapses whitespace runs and trims the result.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// --- gallery numbering ---

var (
	mainIDPattern  = regexp.MustCompile(`^main(\d+)$`)
	radioIDPattern = regexp.MustCompile(`^img(\d+)$`)
)

// IndexedSelection pairs an element with the 1-based index parsed from its
// id or for attribute.
type IndexedSelection struct {
	Index int
	Sel   *goquery.Selection
}

// MainImages returns the gallery main-image slots ordered by index.
func MainImages(doc *goquery.Document) []IndexedSelection {
	var out []IndexedSelection
	doc.Find("[id^=main]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if m := mainIDPattern.FindStringSubmatch(id); m != nil {
			n, _ := strconv.Atoi(m[1])
			out = append(out, IndexedSelection{Index: n, Sel: s})
		}
	})
	sortIndexed(out)
	return out
}

// GalleryRadios returns the radio inputs of the gallery group in document
// order.
func GalleryRadios(doc *goquery.Document) *goquery.Selection {
	return doc.Find(`input[type=radio][name=gallery]`)
}

// ArrowLabels returns the prev/next navigation labels in document order.
func ArrowLabels(doc *goquery.Document) *goquery.Selection {
	return doc.Find("label[for]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return IsArrow(s)
	})
}

// IsArrow reports whether a label is an arrow control.
func IsArrow(s *goquery.Selection) bool {
	class, _ := s.Attr("class")
	class = strings.ToLower(class)
	for _, token := range []string{"arrow", "prev", "next", "nav-left", "nav-right"} {
		if strings.Contains(class, token) {
			return true
		}
	}
	return false
}

// IsPrevArrow reports whether an arrow label navigates backwards.
func IsPrevArrow(s *goquery.Selection) bool {
	class, _ := s.Attr("class")
	class = strings.ToLower(class)
	return strings.Contains(class, "prev") || strings.Contains(class, "left")
}

// ThumbLabels returns thumbnail labels (label[for=imgN] that are not
// arrows) ordered by the index they target.
func ThumbLabels(doc *goquery.Document) []IndexedSelection {
	var out []IndexedSelection
	doc.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		if IsArrow(s) {
			return
		}
		target, _ := s.Attr("for")
		if m := radioIDPattern.FindStringSubmatch(target); m != nil {
			n, _ := strconv.Atoi(m[1])
			out = append(out, IndexedSelection{Index: n, Sel: s})
		}
	})
	sortIndexed(out)
	return out
}

func sortIndexed(items []IndexedSelection) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Index < items[j].Index })
}
