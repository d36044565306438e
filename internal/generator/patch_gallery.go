// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"listingeditor/internal/gallery"
	"listingeditor/internal/markup"
	"listingeditor/internal/models"
)

var (
	trailingNumber = regexp.MustCompile(`^(.*?)(\d+)$`)
	cssRule        = regexp.MustCompile(`[^{}]*\{[^{}]*\}`)
	// selectorIndex matches an id, class or attribute value ending in a
	// number inside a selector, e.g. "#main3" or "[for=img3".
	selectorIndex = regexp.MustCompile(`([#.][A-Za-z_-]+|=["']?[A-Za-z_-]+)(\d+)\b`)
)

// gallery keeps an existing radio gallery working for the new image list.
// Documents without one get their generic gallery markup rebuilt.
func (p *patcher) gallery() {
	images := p.data.Images
	if len(images) == 0 {
		return
	}
	if p.hasRadioGallery() {
		p.patchRadioGallery(images)
		return
	}
	p.patchGenericGallery(images)
}

func (p *patcher) hasRadioGallery() bool {
	return markup.GalleryRadios(p.doc).Length() > 0 &&
		markup.ArrowLabels(p.doc).Length() > 0 &&
		p.doc.Find("#"+gallery.MainID(1)).Length() > 0
}

// radioSlots indexes the pieces of one gallery position.
type radioSlots struct {
	radios map[int]*goquery.Selection
	mains  map[int]*goquery.Selection
	thumbs map[int][]*goquery.Selection
	arrows map[int][]*goquery.Selection // standalone arrows, outside a main slot
	order  []int                        // main slot indices, ascending
}

func (p *patcher) collectSlots() radioSlots {
	s := radioSlots{
		radios: make(map[int]*goquery.Selection),
		mains:  make(map[int]*goquery.Selection),
		thumbs: make(map[int][]*goquery.Selection),
		arrows: make(map[int][]*goquery.Selection),
	}
	markup.GalleryRadios(p.doc).Each(func(_ int, r *goquery.Selection) {
		if k, ok := indexWithPrefix(r.AttrOr("id", ""), "img"); ok {
			s.radios[k] = r
		}
	})
	for _, m := range markup.MainImages(p.doc) {
		s.mains[m.Index] = m.Sel
		s.order = append(s.order, m.Index)
	}
	for _, t := range markup.ThumbLabels(p.doc) {
		s.thumbs[t.Index] = append(s.thumbs[t.Index], t.Sel)
	}
	markup.ArrowLabels(p.doc).Each(func(_ int, a *goquery.Selection) {
		if a.ParentsFiltered("[id^=main]").Length() > 0 {
			return
		}
		if k, ok := trailingIndex(a.AttrOr("id", "")); ok {
			s.arrows[k] = append(s.arrows[k], a)
		}
	})
	return s
}

func (p *patcher) patchRadioGallery(images []models.ImageItem) {
	slots := p.collectSlots()
	n := len(images)
	existing := len(slots.order)

	for i := 0; i < min(n, existing); i++ {
		k := slots.order[i]
		setImage(slots.mains[k], images[i], i+1)
		for _, t := range slots.thumbs[k] {
			setImage(t, images[i], i+1)
		}
	}

	if n > existing {
		p.growRadioGallery(slots, images[existing:], existing)
		p.did("gallery:append")
	} else if n < existing {
		for _, k := range slots.order[n:] {
			removeSlot(slots, k)
		}
		p.pruneThumbSets()
		p.did("gallery:shrink")
	}

	p.rewireArrows(n)
	ensureOneChecked(markup.GalleryRadios(p.doc))
	p.did("gallery")
}

// growRadioGallery appends slots by cloning the last existing one and
// renumbering its ids, then adds the CSS rules for the new indices.
func (p *patcher) growRadioGallery(slots radioSlots, extra []models.ImageItem, existing int) {
	last := slots.order[existing-1]

	tailRadio := slots.radios[last]
	tailMain := slots.mains[last]
	var tailThumb *goquery.Selection
	if ts := slots.thumbs[last]; len(ts) > 0 {
		tailThumb = ts[len(ts)-1]
	}
	var tailArrow *goquery.Selection
	if as := slots.arrows[last]; len(as) > 0 {
		tailArrow = as[len(as)-1]
	}

	var added []int
	for j, img := range extra {
		k := last + j + 1
		pos := existing + j + 1
		added = append(added, k)

		if tailRadio != nil {
			r := tailRadio.Clone()
			renumber(r, last, k)
			r.RemoveAttr("checked")
			tailRadio.AfterSelection(r)
			tailRadio = r
		}

		m := slots.mains[last].Clone()
		renumber(m, last, k)
		setImage(m, img, pos)
		tailMain.AfterSelection(m)
		tailMain = m

		if tailThumb != nil {
			t := slots.thumbs[last][len(slots.thumbs[last])-1].Clone()
			renumber(t, last, k)
			setImage(t, img, pos)
			tailThumb.AfterSelection(t)
			tailThumb = t
		}

		for _, a := range slots.arrows[last] {
			c := a.Clone()
			renumber(c, last, k)
			tailArrow.AfterSelection(c)
			tailArrow = c
		}
	}

	p.appendGalleryCSS(last, added, existing+len(extra))
}

// appendGalleryCSS clones the rules written for index last to each new
// index. Documents whose CSS has no such rules get the standard rule set.
func (p *patcher) appendGalleryCSS(last int, added []int, total int) {
	styles := p.doc.Find("style")
	var css strings.Builder
	styles.Each(func(_ int, s *goquery.Selection) {
		css.WriteString(s.Text())
		css.WriteString("\n")
	})
	existingCSS := css.String()

	marker := "#" + gallery.RadioID(last) + ":checked"
	var templates []string
	for _, rule := range cssRule.FindAllString(existingCSS, -1) {
		rule = strings.TrimSpace(rule)
		if selector, _, ok := strings.Cut(rule, "{"); ok && strings.Contains(selector, marker) {
			templates = append(templates, rule)
		}
	}

	var b strings.Builder
	for _, k := range added {
		if strings.Contains(existingCSS, "#"+gallery.RadioID(k)+":checked") {
			continue
		}
		if len(templates) == 0 {
			b.WriteString(gallery.RuleSet(k, total))
			continue
		}
		for _, rule := range templates {
			b.WriteString(reindexRule(rule, last, k))
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return
	}

	node := &xhtml.Node{Type: xhtml.ElementNode, Data: "style", DataAtom: atom.Style}
	node.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: "\n" + b.String()})
	if styles.Length() > 0 {
		styles.Last().AfterNodes(node)
	} else if head := p.doc.Find("head").First(); head.Length() > 0 {
		head.AppendNodes(node)
	} else {
		p.doc.Find("body").First().AppendNodes(node)
	}
	p.did("gallery:css")
}

// reindexRule rewrites the selector part of rule from index from to index
// to. Declarations are copied untouched.
func reindexRule(rule string, from, to int) string {
	selector, body, _ := strings.Cut(rule, "{")
	want := strconv.Itoa(from)
	selector = selectorIndex.ReplaceAllStringFunc(selector, func(m string) string {
		parts := selectorIndex.FindStringSubmatch(m)
		if parts[2] != want {
			return m
		}
		return parts[1] + strconv.Itoa(to)
	})
	return selector + "{" + body
}

func removeSlot(slots radioSlots, k int) {
	if r, ok := slots.radios[k]; ok {
		r.Remove()
	}
	slots.mains[k].Remove()
	for _, t := range slots.thumbs[k] {
		t.Remove()
	}
	for _, a := range slots.arrows[k] {
		a.Remove()
	}
}

// pruneThumbSets drops thumbnail pages left without thumbnails together
// with their set radios, then points the remaining page arrows at their
// wraparound neighbors.
func (p *patcher) pruneThumbSets() {
	pruned := false
	p.doc.Find(".thumb-set[id]").Each(func(_ int, page *goquery.Selection) {
		thumbs := page.Find("label[for]").FilterFunction(func(_ int, l *goquery.Selection) bool {
			return !markup.IsArrow(l)
		})
		if thumbs.Length() > 0 {
			return
		}
		if s, ok := indexWithPrefix(page.AttrOr("id", ""), "page"); ok {
			p.doc.Find("#" + gallery.SetID(s)).Remove()
		}
		page.Remove()
		pruned = true
	})
	if !pruned {
		return
	}

	var pages []*goquery.Selection
	var sets []int
	p.doc.Find(".thumb-set[id]").Each(func(_ int, page *goquery.Selection) {
		if s, ok := indexWithPrefix(page.AttrOr("id", ""), "page"); ok {
			pages = append(pages, page)
			sets = append(sets, s)
		}
	})
	for j, page := range pages {
		page.Find(".set-prev").SetAttr("for", gallery.SetID(sets[gallery.PrevTarget(j, len(sets))]))
		page.Find(".set-next").SetAttr("for", gallery.SetID(sets[gallery.NextTarget(j, len(sets))]))
	}
	ensureOneChecked(p.doc.Find(`input[type=radio][name=` + gallery.SetRadioName + `]`))
	p.did("gallery:prune-sets")
}

// rewireArrows points every arrow at its wraparound neighbor for n images.
// An arrow belongs to the slot named by its id, or to the main slot it
// sits in.
func (p *patcher) rewireArrows(n int) {
	markup.ArrowLabels(p.doc).Each(func(_ int, a *goquery.Selection) {
		k, ok := trailingIndex(a.AttrOr("id", ""))
		if !ok {
			k, ok = trailingIndex(a.Closest("[id^=main]").AttrOr("id", ""))
		}
		if !ok || k < 1 || k > n {
			return
		}
		if !strings.HasPrefix(a.AttrOr("for", ""), "img") {
			return
		}
		target := gallery.NextTarget(k-1, n)
		if markup.IsPrevArrow(a) {
			target = gallery.PrevTarget(k-1, n)
		}
		a.SetAttr("for", gallery.RadioID(target+1))
	})
}

func ensureOneChecked(radios *goquery.Selection) {
	if radios.Length() == 0 {
		return
	}
	checked := radios.Filter("[checked]")
	switch {
	case checked.Length() == 0:
		radios.First().SetAttr("checked", "")
	case checked.Length() > 1:
		checked.Slice(1, checked.Length()).RemoveAttr("checked")
	}
}

// patchGenericGallery rebuilds repeated gallery items and thumbnails from
// their first entry, or renders a new gallery into an empty container.
func (p *patcher) patchGenericGallery(images []models.ImageItem) {
	rebuilt := false
	for _, selector := range []string{".gallery-item", ".thumbnail"} {
		if items := p.doc.Find(selector); items.Length() > 0 {
			rebuildRepeated(items, images)
			rebuilt = true
		}
	}
	if rebuilt {
		p.did("gallery:items")
		return
	}

	if box := p.doc.Find(".product-gallery, .gallery").First(); box.Length() > 0 {
		box.SetHtml(gallery.Render(images))
		p.did("gallery:render")
	}
}

func rebuildRepeated(items *goquery.Selection, images []models.ImageItem) {
	first := items.First()
	parent := first.Parent()
	var group []*goquery.Selection
	items.Each(func(_ int, s *goquery.Selection) {
		if s.Parent().Get(0) == parent.Get(0) {
			group = append(group, s)
		}
	})
	tmpl := first.Clone()
	anchor := nextSiblingAfter(group)
	for _, s := range group {
		s.Remove()
	}
	for i, img := range images {
		c := tmpl.Clone()
		setImage(c, img, i+1)
		insertBefore(parent, anchor, c.Nodes...)
	}
}

// setImage points the <img> of a slot (or the slot itself) at img.
func setImage(slot *goquery.Selection, img models.ImageItem, pos int) {
	target := slot
	if goquery.NodeName(slot) != "img" {
		target = slot.Find("img").First()
	}
	if target.Length() == 0 {
		return
	}
	target.SetAttr("src", img.URL)
	alt := img.Alt
	if alt == "" {
		alt = "Product image " + strconv.Itoa(pos)
	}
	target.SetAttr("alt", alt)
}

// renumber moves a cloned slot from index from to index to by rewriting
// numbered id, for and class tokens on the element and its descendants.
func renumber(sel *goquery.Selection, from, to int) {
	sel.Find("*").AddSelection(sel).Each(func(_ int, s *goquery.Selection) {
		for _, name := range []string{"id", "for"} {
			if v, ok := s.Attr(name); ok {
				s.SetAttr(name, renumberToken(v, from, to))
			}
		}
		if class, ok := s.Attr("class"); ok {
			tokens := strings.Fields(class)
			for i, t := range tokens {
				tokens[i] = renumberToken(t, from, to)
			}
			s.SetAttr("class", strings.Join(tokens, " "))
		}
	})
}

func renumberToken(tok string, from, to int) string {
	m := trailingNumber.FindStringSubmatch(tok)
	if m == nil || m[2] != strconv.Itoa(from) {
		return tok
	}
	return m[1] + strconv.Itoa(to)
}

func trailingIndex(id string) (int, bool) {
	m := trailingNumber.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	return n, err == nil
}

func indexWithPrefix(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	return n, err == nil
}
