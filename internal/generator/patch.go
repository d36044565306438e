// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"listingeditor/internal/currency"
	"listingeditor/internal/markup"
	"listingeditor/internal/models"
)

// patcher carries the document being patched. Each step looks its targets
// up through the markup finders the parser uses and is a no-op when none
// exist.
type patcher struct {
	doc   *goquery.Document
	data  models.TemplateData
	steps []string
}

func (p *patcher) did(step string) {
	p.steps = append(p.steps, step)
}

type patchStep struct {
	name string
	run  func(*patcher)
}

// patchSteps run in this order. Later steps may rely on nodes inserted by
// earlier ones (the description anchor list includes the gallery).
var patchSteps = []patchStep{
	{"title", (*patcher).title},
	{"subtitle", (*patcher).subtitle},
	{"logo", (*patcher).logo},
	{"price", (*patcher).price},
	{"gallery", (*patcher).gallery},
	{"specs", (*patcher).specs},
	{"description", (*patcher).description},
	{"company", (*patcher).company},
}

// title rewrites every place the title shows. An empty title leaves the
// document alone.
func (p *patcher) title() {
	title := p.data.Title
	if title == "" {
		return
	}
	changed := false

	sel, strategy := markup.First(p.doc, markup.TitleFinders())
	if sel != nil && strategy != "document-title" {
		sel.SetText(title)
		// Keep a rewritten legacy headline findable once its marker is gone.
		if strategy == "legacy-marker" {
			sel.AddClass("product-title")
		}
		changed = true
	}
	if all := p.doc.Find(".product-title"); all.Length() > 0 {
		all.SetText(title)
		changed = true
	}

	if t := p.doc.Find("title"); t.Length() > 0 {
		t.SetText(title)
		changed = true
	} else if head := p.doc.Find("head").First(); head.Length() > 0 {
		head.AppendHtml("<title>" + html.EscapeString(title) + "</title>")
		changed = true
	}

	if changed {
		p.did("title")
	}
}

// subtitle writes every .product-subtitle plus the element the parser
// reads the subtitle from, which may be a tagline or a legacy heading.
func (p *patcher) subtitle() {
	sub := p.data.Subtitle
	if sub == "" {
		return
	}
	targets := p.doc.Find(".product-subtitle")
	family := p.doc.Find(markup.SubtitleSelector)
	read := family.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return markup.CleanText(s.Text()) != ""
	}).First()
	if read.Length() == 0 {
		read = family.First()
	}
	targets = targets.AddSelection(read)
	if targets.Length() == 0 {
		return
	}
	targets.SetText(sub)
	p.did("subtitle")
}

func (p *patcher) logo() {
	logo := strings.TrimSpace(p.data.Logo)
	if logo == "" {
		return
	}
	imgs := markup.LogoImages(p.doc)
	svgs := markup.LogoSVGs(p.doc)

	if isSVG(logo) {
		if imgs.Length()+svgs.Length() == 0 {
			p.fillEmptyLogoContainer(logo)
			return
		}
		imgs.ReplaceWithHtml(logo)
		svgs.ReplaceWithHtml(logo)
		p.did("logo")
		return
	}

	if imgs.Length()+svgs.Length() == 0 {
		p.fillEmptyLogoContainer(logoImgTag(logo, "Logo"))
		return
	}
	imgs.SetAttr("src", logo)
	svgs.Each(func(_ int, s *goquery.Selection) {
		alt := s.AttrOr("aria-label", "Logo")
		s.ReplaceWithHtml(logoImgTag(logo, alt))
	})
	p.did("logo")
}

// fillEmptyLogoContainer covers documents rendered while the logo was
// still empty.
func (p *patcher) fillEmptyLogoContainer(markupStr string) {
	box := p.doc.Find(".logo, .shop-logo, .logo-container").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Children().Length() == 0 && strings.TrimSpace(s.Text()) == ""
	}).First()
	if box.Length() == 0 {
		return
	}
	box.SetHtml(markupStr)
	p.did("logo")
}

func logoImgTag(src, alt string) string {
	return `<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(alt) + `" class="logo-img">`
}

func (p *patcher) price() {
	if p.data.Price == "" {
		return
	}
	code := p.data.Currency
	if code == "" {
		code = currency.DefaultCode
	}
	prices := markup.Prices(p.doc)
	metas := markup.PriceMetas(p.doc)
	if prices.Length()+metas.Length() == 0 {
		return
	}
	prices.SetText(currency.Format(p.data.Price, code))
	if metas.Length() > 0 {
		metas.SetAttr("content", p.data.Price)
		markup.CurrencyMetas(p.doc).SetAttr("content", code)
	}
	p.did("price")
}

// specs rewrites the first spec table, or the repeated spec blocks, or
// appends a new table to a technical section.
func (p *patcher) specs() {
	specs := p.data.Specs

	if table := markup.SpecTable(p.doc); table.Length() > 0 {
		p.patchSpecTable(table, specs)
		p.did("specs")
		return
	}

	if items := markup.SpecItems(p.doc); items.Length() > 0 {
		p.patchSpecItems(items, specs)
		p.did("specs")
		return
	}

	if len(specs) == 0 {
		return
	}
	if tech := markup.TechSection(p.doc); tech.Length() > 0 {
		var b strings.Builder
		b.WriteString(`<table class="specs-table"><tbody>`)
		for _, s := range specs {
			b.WriteString(specRowHTML(s))
		}
		b.WriteString(`</tbody></table>`)
		tech.AppendHtml(b.String())
		p.did("specs:append")
	}
}

func specRowHTML(s models.SpecItem) string {
	return `<tr><td class="spec-label">` + html.EscapeString(s.Label) +
		`</td><td class="spec-value">` + html.EscapeString(s.Value) + `</td></tr>`
}

func (p *patcher) patchSpecTable(table *goquery.Selection, specs []models.SpecItem) {
	var body []*goquery.Selection
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if row.ParentsFiltered("thead").Length() > 0 {
			return
		}
		cells := row.ChildrenFiltered("td, th")
		if i == 0 && cells.Length() > 0 && cells.Length() == cells.Filter("th").Length() {
			return
		}
		body = append(body, row)
	})

	var container *goquery.Selection
	var tmpl *goquery.Selection
	if len(body) > 0 {
		container = body[0].Parent()
		tmpl = body[0].Clone()
	} else if tbody := table.ChildrenFiltered("tbody").Last(); tbody.Length() > 0 {
		container = tbody
	} else {
		container = table
	}
	anchor := nextSiblingAfter(body)
	for _, row := range body {
		row.Remove()
	}

	for _, s := range specs {
		insertBefore(container, anchor, newSpecRow(tmpl, s)...)
	}
}

func newSpecRow(tmpl *goquery.Selection, s models.SpecItem) []*xhtml.Node {
	if tmpl != nil {
		row := tmpl.Clone()
		if cells := row.ChildrenFiltered("td, th"); cells.Length() >= 2 {
			cells.Eq(0).SetText(s.Label)
			cells.Eq(1).SetText(s.Value)
			return row.Nodes
		}
	}
	tr := element("tr", "")
	tr.AppendChild(textElement("td", "spec-label", s.Label))
	tr.AppendChild(textElement("td", "spec-value", s.Value))
	return []*xhtml.Node{tr}
}

func (p *patcher) patchSpecItems(items *goquery.Selection, specs []models.SpecItem) {
	tables := p.doc.Find(markup.SpecTableSelector)
	first := items.First()
	parent := first.Parent()
	var group []*goquery.Selection
	items.Each(func(_ int, s *goquery.Selection) {
		if s.Parent().Get(0) != parent.Get(0) {
			return
		}
		if t := s.Closest("table"); t.Length() > 0 && t.IsSelection(tables) {
			return
		}
		group = append(group, s)
	})
	if len(group) == 0 {
		return
	}

	tmpl := group[0].Clone()
	anchor := nextSiblingAfter(group)
	for _, s := range group {
		s.Remove()
	}
	for _, s := range specs {
		item := tmpl.Clone()
		label := item.Find(markup.SpecLabelSelector).First()
		value := item.Find(markup.SpecValueSelector).First()
		if label.Length() == 0 && value.Length() == 0 && item.Children().Length() == 2 {
			label, value = item.Children().Eq(0), item.Children().Eq(1)
		}
		label.SetText(s.Label)
		value.SetText(s.Value)
		insertBefore(parent, anchor, item.Nodes...)
	}
}

// description updates the description container, or adds one after a
// description heading, or inserts a whole description section.
func (p *patcher) description() {
	desc := p.data.Description
	container := markup.DescriptionContainer(p.doc)
	heading := markup.DescriptionHeading(p.doc)
	block := markup.FollowingBlock(heading)

	if metas := markup.DescriptionMetas(p.doc); metas.Length() > 0 {
		metas.SetAttr("content", plainText(desc))
	}

	if container.Length() > 0 {
		container.SetHtml(desc)
		// The parser reads the block under a description heading first, so
		// it has to carry the same content when it is a separate element.
		if block != nil && !related(block, container) {
			block.SetHtml(desc)
		}
		p.did("description")
		return
	}

	if desc == "" {
		return
	}

	if heading.Length() > 0 {
		heading.AfterHtml(`<div class="product-description">` + desc + `</div>`)
		p.did("description:insert-after-heading")
		return
	}

	section := `<section class="description-section"><h2>Product Description</h2><div class="product-description">` + desc + `</div></section>`
	if anchor, _ := markup.First(p.doc, markup.DescriptionAnchors()); anchor != nil {
		anchor.BeforeHtml(section)
	} else {
		p.doc.Find("body").AppendHtml(section)
	}
	p.did("description:insert-section")
}

// plainText flattens description markup for attribute values.
func plainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return markup.CleanText(fragment)
	}
	return markup.CleanText(doc.Text())
}

// related reports whether a and b are the same node or one contains the
// other.
func related(a, b *goquery.Selection) bool {
	an, bn := a.Get(0), b.Get(0)
	if an == bn {
		return true
	}
	return a.Find("*").IsSelection(b) || b.Find("*").IsSelection(a)
}

// company updates the existing trust cards in place. Cards are matched to
// sections by DOM id first and by position otherwise. Cards are never added
// or removed.
func (p *patcher) company() {
	sections := p.data.CompanyInfo
	cards := markup.CompanyCards(p.doc)
	if cards.Length() == 0 || len(sections) == 0 {
		return
	}

	byID := make(map[string]int, len(sections))
	for i, s := range sections {
		byID[s.ID] = i
	}
	claimed := make(map[int]bool)
	cards.Each(func(_ int, card *goquery.Selection) {
		if i, ok := byID[card.AttrOr("id", "")]; ok {
			claimed[i] = true
		}
	})

	updated := false
	cards.Each(func(pos int, card *goquery.Selection) {
		idx, ok := byID[card.AttrOr("id", "")]
		if !ok {
			if pos >= len(sections) || claimed[pos] {
				return
			}
			idx = pos
		}
		updateCard(card, sections[idx])
		updated = true
	})
	if updated {
		p.did("company")
	}
}

func updateCard(card *goquery.Selection, s models.CompanySection) {
	title := card.Find(markup.CardTitleSelector).First()
	text := card.Find(markup.CardTextSelector).FilterFunction(func(_ int, t *goquery.Selection) bool {
		if title.Length() == 0 {
			return true
		}
		return !related(t, title)
	}).First()

	title.SetText(s.Title)
	text.SetText(s.Description)

	if s.SVG == "" {
		return
	}
	if icon := card.Find(markup.CardIconSelector).First(); icon.Length() > 0 {
		icon.SetHtml(s.SVG)
	} else if svg := card.Find("svg").First(); svg.Length() > 0 {
		svg.ReplaceWithHtml(s.SVG)
	}
}

// --- node helpers ---

// nextSiblingAfter returns the node following the last element of group,
// which stays in place while the group is replaced.
func nextSiblingAfter(group []*goquery.Selection) *xhtml.Node {
	if len(group) == 0 {
		return nil
	}
	return group[len(group)-1].Get(0).NextSibling
}

// insertBefore inserts nodes into parent before anchor, or at the end when
// anchor is nil.
func insertBefore(parent *goquery.Selection, anchor *xhtml.Node, nodes ...*xhtml.Node) {
	pn := parent.Get(0)
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		if anchor != nil && anchor.Parent == pn {
			pn.InsertBefore(n, anchor)
		} else {
			pn.AppendChild(n)
		}
	}
}

func element(tag, class string) *xhtml.Node {
	n := &xhtml.Node{Type: xhtml.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if class != "" {
		n.Attr = []xhtml.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func textElement(tag, class, text string) *xhtml.Node {
	n := element(tag, class)
	n.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: text})
	return n
}
