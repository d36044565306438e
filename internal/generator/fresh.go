// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"listingeditor/internal/currency"
	"listingeditor/internal/gallery"
	"listingeditor/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var listingTmpl = template.Must(template.ParseFS(templateFS, "templates/listing.html"))

// freshView is the data passed to the listing layout. Fields typed as
// template.HTML carry markup the user authored in the editor.
type freshView struct {
	Title       string
	Subtitle    string
	Price       string
	CSS         template.CSS
	LogoURL     string
	LogoSVG     template.HTML
	Gallery     template.HTML
	Description template.HTML
	Specs       []models.SpecItem
	Company     []companyView
}

type companyView struct {
	ID          string
	Title       string
	Description string
	SVG         template.HTML
}

// renderFresh synthesizes a complete standalone listing document.
func renderFresh(data models.TemplateData, pal Palette) (string, error) {
	price := data.Price
	if price == "" {
		price = "0.00"
	}
	code := data.Currency
	if code == "" {
		code = currency.DefaultCode
	}

	view := freshView{
		Title:       data.Title,
		Subtitle:    data.Subtitle,
		Price:       currency.Format(price, code),
		CSS:         template.CSS(stylesheet(pal)),
		Gallery:     template.HTML(gallery.Render(data.Images)),
		Description: template.HTML(data.Description),
		Specs:       data.Specs,
	}
	if logo := strings.TrimSpace(data.Logo); isSVG(logo) {
		view.LogoSVG = template.HTML(logo)
	} else {
		view.LogoURL = logo
	}
	for _, c := range data.CompanyInfo {
		view.Company = append(view.Company, companyView{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			SVG:         template.HTML(c.SVG),
		})
	}

	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute listing layout: %w", err)
	}
	return buf.String(), nil
}

func isSVG(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "<svg")
}

// stylesheet builds the document CSS. Font lists contain quotes, which the
// template CSS filter rejects, so the sheet is assembled here from values
// ResolvePalette already validated.
func stylesheet(p Palette) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":root { --primary: %s; --secondary: %s; --accent: %s; --background: %s; --text: %s; --gallery-active: %s; }\n",
		p.Primary, p.Secondary, p.Accent, p.Background, p.Text, p.Accent)
	fmt.Fprintf(&b, "body { margin: 0; background: var(--background); color: var(--text); font-family: %s; line-height: 1.6; }\n", p.FontBody)
	fmt.Fprintf(&b, "h1, h2, h3 { font-family: %s; color: var(--primary); }\n", p.FontHeading)
	b.WriteString(`.listing { max-width: 960px; margin: 0 auto; padding: 20px; }
.product-header { display: flex; gap: 24px; align-items: center; border-bottom: 3px solid var(--primary); padding-bottom: 16px; }
.logo img, .logo svg { max-width: 160px; max-height: 80px; }
.product-title { margin: 0; font-size: 28px; }
.product-subtitle { margin: 4px 0; color: var(--secondary); }
.price { font-size: 26px; font-weight: bold; color: var(--accent); }
.product-gallery { margin: 24px 0; }
.description-section, .tech-specs, .company-section { margin: 32px 0; }
.specs-table { width: 100%; border-collapse: collapse; }
.specs-table td { padding: 8px 12px; border-bottom: 1px solid #e5e5e5; }
.spec-label { font-weight: bold; width: 40%; }
.components-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 20px; }
.component-card { padding: 20px; border: 1px solid #e5e5e5; border-radius: 8px; text-align: center; }
.component-icon svg { width: 48px; height: 48px; color: var(--primary); }
.listing-footer { margin-top: 40px; text-align: center; color: var(--secondary); font-size: 13px; }
@media (max-width: 600px) { .product-header { flex-direction: column; } }
`)
	return b.String()
}
