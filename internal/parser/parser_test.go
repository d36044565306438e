// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingFixture = `<!DOCTYPE html>
<html><head><title>Shop listing</title></head>
<body>
<header class="product-header">
  <div class="logo"><img src="https://cdn.example.com/shop.png" alt="Shop"></div>
  <div class="product-info">
    <h1 class="product-title">Vintage Camera</h1>
    <p class="product-subtitle">Fully serviced, ready to shoot</p>
    <div class="price">€49.99</div>
  </div>
</header>
<section class="product-gallery">
  <input type="radio" name="gallery" id="img1" checked>
  <input type="radio" name="gallery" id="img2">
  <div class="gallery-container">
    <div class="main-image" id="main1"><img src="https://img.example.com/a.jpg" alt="Front"></div>
    <div class="main-image" id="main2"><img src="https://img.example.com/b.jpg" alt="Back"></div>
  </div>
  <div class="thumbnails">
    <label for="img1" class="thumbnail" id="thumb1"><img src="https://img.example.com/a.jpg"></label>
    <label for="img2" class="thumbnail" id="thumb2"><img src="https://img.example.com/b.jpg"></label>
  </div>
</section>
<section class="description-section">
  <h2>Product Description</h2>
  <div class="product-description"><p>Works <b>perfectly</b>.</p></div>
</section>
<section class="tech-specs">
  <h2>Technical Data</h2>
  <table class="specs-table">
    <tr><th>Property</th><th>Value</th></tr>
    <tr><td class="spec-label">Brand:</td><td class="spec-value">Leica</td></tr>
    <tr><td class="spec-label">Year</td><td class="spec-value">1968</td></tr>
  </table>
</section>
<section class="company-section">
  <div class="components-grid">
    <div class="component-card" id="card-shipping"><div class="component-icon"><svg viewBox="0 0 1 1"></svg></div><h3 class="component-title">Shipping</h3><p class="component-description">Next day.</p></div>
    <div class="component-card" id="card-returns"><div class="component-icon"></div><h3 class="component-title">Returns</h3><p class="component-description">30 days.</p></div>
  </div>
</section>
</body></html>`

func TestParseListing(t *testing.T) {
	t.Parallel()

	data := Parse(listingFixture)

	assert.Equal(t, "Vintage Camera", data.Title)
	assert.Equal(t, "Fully serviced, ready to shoot", data.Subtitle)
	assert.Equal(t, "49.99", data.Price)
	assert.Equal(t, "EUR", data.Currency)
	assert.Equal(t, "https://cdn.example.com/shop.png", data.Logo)
	assert.Equal(t, "<p>Works <b>perfectly</b>.</p>", data.Description)
	assert.Equal(t, listingFixture, data.RawHTML)

	require.Len(t, data.Images, 2)
	assert.Equal(t, "https://img.example.com/a.jpg", data.Images[0].URL)
	assert.Equal(t, "Front", data.Images[0].Alt)
	assert.Equal(t, "https://img.example.com/b.jpg", data.Images[1].URL)
	assert.NotEmpty(t, data.Images[0].ID)

	require.Len(t, data.Specs, 2)
	assert.Equal(t, "Brand", data.Specs[0].Label)
	assert.Equal(t, "Leica", data.Specs[0].Value)
	assert.Equal(t, "Year", data.Specs[1].Label)

	require.Len(t, data.CompanyInfo, 2)
	assert.Equal(t, "card-shipping", data.CompanyInfo[0].ID)
	assert.Equal(t, "Shipping", data.CompanyInfo[0].Title)
	assert.Equal(t, "Next day.", data.CompanyInfo[0].Description)
	assert.Contains(t, data.CompanyInfo[0].SVG, "<svg")
}

func TestParseBrokenInputFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	res := ParseWithReport("<not even html")

	assert.True(t, res.Degraded)
	assert.Equal(t, "<not even html", res.Data.RawHTML)
	assert.Equal(t, "EUR", res.Data.Currency)
	assert.Empty(t, res.Data.Title)
	assert.Empty(t, res.Data.Images)
	require.Len(t, res.Data.CompanyInfo, 3)
	for _, c := range res.Data.CompanyInfo {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, DefaultIcon, c.SVG)
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	data := Parse("")
	assert.Equal(t, "EUR", data.Currency)
	assert.NotNil(t, data.Images)
	assert.NotNil(t, data.Specs)
	assert.Len(t, data.CompanyInfo, 3)
}

func TestParseTitleStrategies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "legacy marker beats product-title",
			src:  `<div class="product-info"><h2>Lens 50mm | NEU</h2></div><h1 class="product-title">Other</h1>`,
			want: "Lens 50mm | NEU",
		},
		{
			name: "product-title class",
			src:  `<h1>Shop name</h1><div class="product-title">Tripod</div>`,
			want: "Tripod",
		},
		{
			name: "first h1",
			src:  `<h1>  Flash   unit </h1>`,
			want: "Flash unit",
		},
		{
			name: "document title",
			src:  `<html><head><title>Only title</title></head><body></body></html>`,
			want: "Only title",
		},
		{
			name: "empty h1 skipped",
			src:  `<h1> </h1><div class="product-info"><h2>Strap</h2></div>`,
			want: "Strap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.src).Title)
		})
	}
}

func TestParsePriceAndCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src       string
		wantPrice string
		wantCode  string
	}{
		{`<span class="price">$19.99</span>`, "19.99", "USD"},
		{`<span class="price">19,99 €</span>`, "19,99", "EUR"},
		{`<span class="product-price">GBP 120.00</span>`, "120.00", "GBP"},
		{`<span class="price">¥2500</span>`, "2500", "JPY"},
		{`<span class="price">1.299,00</span>`, "1.299,00", "EUR"},
		{`<div class="price"><span class="price-value">A$35</span></div>`, "35", "AUD"},
		{`<meta itemprop="price" content="24.00"><p>microdata only</p>`, "24.00", "EUR"},
		{`<p>no price here</p>`, "", "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			data := Parse(tt.src)
			assert.Equal(t, tt.wantPrice, data.Price)
			assert.Equal(t, tt.wantCode, data.Currency)
		})
	}
}

func TestParseDescriptionStrategies(t *testing.T) {
	t.Parallel()

	t.Run("marker heading block", func(t *testing.T) {
		src := `<h2>Produktbeschreibung</h2><div>Neu und <i>original</i> verpackt</div>`
		assert.Equal(t, "Neu und <i>original</i> verpackt", Parse(src).Description)
	})

	t.Run("heading last in wrapper", func(t *testing.T) {
		src := `<div class="head"><h3>Description</h3></div><div>Wrapped <b>text</b></div>`
		assert.Equal(t, "Wrapped <b>text</b>", Parse(src).Description)
	})

	t.Run("container selector", func(t *testing.T) {
		src := `<div class="item-description">Plain text</div>`
		assert.Equal(t, "Plain text", Parse(src).Description)
	})

	t.Run("specific container wins over generic", func(t *testing.T) {
		src := `<div class="description">Family-run shop since 1982</div>` +
			`<div class="product-description">Sharp <b>glass</b></div>`
		assert.Equal(t, "Sharp <b>glass</b>", Parse(src).Description)
	})

	t.Run("microdata meta is not a container", func(t *testing.T) {
		src := `<meta itemprop="description" content="Summary"><div id="description">Full text</div>`
		assert.Equal(t, "Full text", Parse(src).Description)
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, Parse(`<p>hello</p>`).Description)
	})
}

func TestParseImagesSkipsAssetsAndDuplicates(t *testing.T) {
	t.Parallel()

	src := `<body>
<img src="https://cdn.example.com/logo.png">
<img src="https://img.example.com/1.jpg" alt="one">
<img src="https://img.example.com/1.jpg">
<img src="https://img.example.com/favicon.ico">
<img src="https://img.example.com/icons/star.png">
<img data-src="https://img.example.com/2.jpg">
<div class="components-grid"><div><h3>Card</h3><img src="https://img.example.com/card.jpg"></div></div>
</body>`

	data := Parse(src)
	require.Len(t, data.Images, 2)
	assert.Equal(t, "https://img.example.com/1.jpg", data.Images[0].URL)
	assert.Equal(t, "one", data.Images[0].Alt)
	assert.Equal(t, "https://img.example.com/2.jpg", data.Images[1].URL)
}

func TestParseImagesFromThumbnails(t *testing.T) {
	t.Parallel()

	src := `<label for="img2" class="thumbnail"><img src="https://img.example.com/b.jpg"></label>
<label for="img1" class="thumbnail"><img src="https://img.example.com/a.jpg"></label>
<label for="img2" class="arrow next"><img src="https://img.example.com/arrow.jpg"></label>`

	data := Parse(src)
	require.Len(t, data.Images, 2)
	assert.Equal(t, "https://img.example.com/a.jpg", data.Images[0].URL)
	assert.Equal(t, "https://img.example.com/b.jpg", data.Images[1].URL)
}

func TestParseSpecItems(t *testing.T) {
	t.Parallel()

	src := `<div class="specs">
<div class="spec-item"><span class="spec-label">Color</span><span class="spec-value">Black</span></div>
<div class="spec-item"><dt>Color</dt><dd>Silver</dd></div>
<div class="spec-row"><span>Weight</span><span>450 g</span></div>
<div class="spec-row"><span>only one child</span></div>
</div>`

	data := Parse(src)
	require.Len(t, data.Specs, 3)
	assert.Equal(t, "Color", data.Specs[0].Label)
	assert.Equal(t, "Black", data.Specs[0].Value)
	assert.Equal(t, "Color", data.Specs[1].Label, "duplicate labels are kept")
	assert.Equal(t, "Silver", data.Specs[1].Value)
	assert.Equal(t, "Weight", data.Specs[2].Label)
	assert.Equal(t, "450 g", data.Specs[2].Value)
}

func TestParseSpecTableSkipsHeader(t *testing.T) {
	t.Parallel()

	src := `<table class="spec-table">
<thead><tr><td>Name</td><td>Value</td></tr></thead>
<tbody><tr><td>Sensor</td><td>Full frame</td></tr></tbody>
</table>`

	data := Parse(src)
	require.Len(t, data.Specs, 1)
	assert.Equal(t, "Sensor", data.Specs[0].Label)
	assert.Equal(t, "Full frame", data.Specs[0].Value)
}

func TestParseLegacyCompanyCards(t *testing.T) {
	t.Parallel()

	src := `<div class="company-info">
<div class="info-card"><span class="icon"><svg></svg></span><strong>Since 1990</strong><p>Family run.</p></div>
</div>`

	data := Parse(src)
	require.Len(t, data.CompanyInfo, 1)
	assert.Equal(t, "Since 1990", data.CompanyInfo[0].Title)
	assert.Equal(t, "Family run.", data.CompanyInfo[0].Description)
	assert.Equal(t, "<svg></svg>", data.CompanyInfo[0].SVG)
	assert.NotEmpty(t, data.CompanyInfo[0].ID)
}

func TestParseLogoSVG(t *testing.T) {
	t.Parallel()

	src := `<div class="shop-logo"><svg viewBox="0 0 10 10"><circle r="4"></circle></svg></div>`
	data := Parse(src)
	assert.Equal(t, `<svg viewBox="0 0 10 10"><circle r="4"></circle></svg>`, data.Logo)
}

func TestParseWithReportNotes(t *testing.T) {
	t.Parallel()

	res := ParseWithReport(listingFixture)
	assert.False(t, res.Degraded)
	assert.Contains(t, res.Notes, "title: product-title")
	assert.Contains(t, res.Notes, "images: gallery-main")
	assert.Contains(t, res.Notes, "company: components-grid")
}
