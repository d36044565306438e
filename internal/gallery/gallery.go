// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gallery renders a script-free image gallery. Hidden radio inputs
// carry the state: the checked radio decides which main image, thumbnail
// border and arrow pair are visible, purely through CSS sibling selectors.
// Marketplaces strip scripts from listings, so this must work without JS.
package gallery

import (
	"fmt"
	"html"
	"strings"

	"listingeditor/internal/models"
)

const (
	// PageSize is the number of thumbnails shown per thumbnail set.
	PageSize = 5

	// RadioName is the name shared by all image radios.
	RadioName = "gallery"

	// SetRadioName groups the thumbnail-set radios.
	SetRadioName = "thumbset"
)

// Options tunes rendering. The zero value is the plain CSS gallery.
type Options struct {
	// Enhance appends a small script that lets the keyboard arrows move
	// between images. The radio state machine keeps working without it.
	Enhance bool
}

// Id helpers. All indices are 1-based.
func RadioID(k int) string { return fmt.Sprintf("img%d", k) }
func MainID(k int) string  { return fmt.Sprintf("main%d", k) }
func ThumbID(k int) string { return fmt.Sprintf("thumb%d", k) }
func PrevID(k int) string  { return fmt.Sprintf("prev%d", k) }
func NextID(k int) string  { return fmt.Sprintf("next%d", k) }
func SetID(s int) string   { return fmt.Sprintf("set%d", s) }
func PageID(s int) string  { return fmt.Sprintf("page%d", s) }

// PrevTarget returns the 0-based index the "previous" arrow of 0-based
// index i points to, wrapping from the first image to the last.
func PrevTarget(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// NextTarget returns the 0-based index the "next" arrow of 0-based index i
// points to, wrapping from the last image to the first.
func NextTarget(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// SetCount returns how many thumbnail sets n images need.
func SetCount(n int) int {
	if n <= PageSize {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// RuleSet returns the CSS rules for the 1-based image index k: show the
// main image, highlight the thumbnail, show the arrow pair.
func RuleSet(k, total int) string {
	if k < 1 || k > total {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#%s:checked ~ .gallery-container #%s { display: block; }\n", RadioID(k), MainID(k))
	fmt.Fprintf(&b, "#%s:checked ~ .thumbnails #%s { border-color: var(--gallery-active, #333); opacity: 1; }\n", RadioID(k), ThumbID(k))
	fmt.Fprintf(&b, "#%s:checked ~ .gallery-container #%s, #%s:checked ~ .gallery-container #%s { display: flex; }\n",
		RadioID(k), PrevID(k), RadioID(k), NextID(k))
	return b.String()
}

// SetRuleSet returns the CSS rule that shows thumbnail set s.
func SetRuleSet(s, sets int) string {
	if s < 1 || s > sets {
		return ""
	}
	return fmt.Sprintf("#%s:checked ~ .thumbnails #%s { display: flex; }\n", SetID(s), PageID(s))
}

// baseCSS holds the index-independent layout rules. It never mentions a
// numbered id, so counting per-index rules in the output stays exact.
const baseCSS = `.listing-gallery { position: relative; max-width: 800px; margin: 0 auto; }
.listing-gallery input[type=radio] { display: none; }
.listing-gallery .gallery-container { position: relative; width: 100%; padding-top: 75%; background: #fff; overflow: hidden; }
.listing-gallery .main-image { display: none; position: absolute; top: 0; left: 0; width: 100%; height: 100%; }
.listing-gallery .main-image img { width: 100%; height: 100%; object-fit: contain; }
.listing-gallery .arrow { display: none; position: absolute; top: 50%; transform: translateY(-50%); width: 40px; height: 40px; align-items: center; justify-content: center; background: rgba(0,0,0,.4); color: #fff; cursor: pointer; z-index: 2; user-select: none; }
.listing-gallery .arrow-prev { left: 8px; }
.listing-gallery .arrow-next { right: 8px; }
.listing-gallery .thumbnails { display: flex; flex-wrap: wrap; gap: 8px; margin-top: 10px; }
.listing-gallery .thumb-set { display: none; gap: 8px; align-items: center; }
.listing-gallery .thumbnail { display: block; width: 80px; height: 80px; border: 2px solid transparent; opacity: .7; cursor: pointer; }
.listing-gallery .thumbnail img { width: 100%; height: 100%; object-fit: cover; }
.listing-gallery .set-nav { cursor: pointer; padding: 0 6px; font-size: 20px; }
`

// Render emits the gallery fragment for images. Zero images yield "".
func Render(images []models.ImageItem) string {
	return RenderWithOptions(images, Options{})
}

// RenderWithOptions is Render with explicit options.
func RenderWithOptions(images []models.ImageItem, opts Options) string {
	n := len(images)
	if n == 0 {
		return ""
	}
	sets := SetCount(n)
	paged := n > PageSize

	var b strings.Builder
	b.WriteString(`<div class="listing-gallery">` + "\n")

	// 1. radios, first checked
	for i := range images {
		k := i + 1
		checked := ""
		if i == 0 {
			checked = " checked"
		}
		fmt.Fprintf(&b, `<input type="radio" name="%s" id="%s" class="gallery-radio"%s>`+"\n", RadioName, RadioID(k), checked)
	}
	if paged {
		for s := 1; s <= sets; s++ {
			checked := ""
			if s == 1 {
				checked = " checked"
			}
			fmt.Fprintf(&b, `<input type="radio" name="%s" id="%s" class="set-radio"%s>`+"\n", SetRadioName, SetID(s), checked)
		}
	}

	// 2. main images and 4. arrows
	b.WriteString(`<div class="gallery-container">` + "\n")
	for i, img := range images {
		k := i + 1
		fmt.Fprintf(&b, `<div class="main-image" id="%s"><img src="%s" alt="%s"></div>`+"\n",
			MainID(k), attr(img.URL), attr(altText(img, k)))
	}
	for i := range images {
		k := i + 1
		fmt.Fprintf(&b, `<label for="%s" class="arrow arrow-prev" id="%s">&#10094;</label>`+"\n", RadioID(PrevTarget(i, n)+1), PrevID(k))
		fmt.Fprintf(&b, `<label for="%s" class="arrow arrow-next" id="%s">&#10095;</label>`+"\n", RadioID(NextTarget(i, n)+1), NextID(k))
	}
	b.WriteString("</div>\n")

	// 3. thumbnails, 6. partitioned into sets when paged
	b.WriteString(`<div class="thumbnails">` + "\n")
	for s := 1; s <= sets; s++ {
		lo, hi := 0, n
		if paged {
			lo = (s - 1) * PageSize
			hi = min(lo+PageSize, n)
			fmt.Fprintf(&b, `<div class="thumb-set" id="%s">`+"\n", PageID(s))
			fmt.Fprintf(&b, `<label for="%s" class="set-nav set-prev">&lsaquo;</label>`+"\n", SetID(PrevTarget(s-1, sets)+1))
		}
		for i := lo; i < hi; i++ {
			k := i + 1
			fmt.Fprintf(&b, `<label for="%s" class="thumbnail" id="%s"><img src="%s" alt="%s"></label>`+"\n",
				RadioID(k), ThumbID(k), attr(images[i].URL), attr(altText(images[i], k)))
		}
		if paged {
			fmt.Fprintf(&b, `<label for="%s" class="set-nav set-next">&rsaquo;</label>`+"\n", SetID(NextTarget(s-1, sets)+1))
			b.WriteString("</div>\n")
		}
	}
	b.WriteString("</div>\n")

	// 5. generated CSS
	b.WriteString("<style>\n")
	b.WriteString(baseCSS)
	if !paged {
		b.WriteString(".listing-gallery .thumbnails { flex-wrap: nowrap; }\n")
	}
	for k := 1; k <= n; k++ {
		b.WriteString(RuleSet(k, n))
	}
	if paged {
		for s := 1; s <= sets; s++ {
			b.WriteString(SetRuleSet(s, sets))
		}
	}
	b.WriteString("</style>\n")

	if opts.Enhance {
		b.WriteString(enhanceScript)
	}
	b.WriteString("</div>\n")
	return b.String()
}

// enhanceScript moves between radios with the keyboard. Progressive
// enhancement only.
const enhanceScript = `<script>
(function(){var r=document.querySelectorAll('input[name="gallery"]');if(!r.length)return;
document.addEventListener('keydown',function(e){var i=0;for(;i<r.length;i++){if(r[i].checked)break}
if(e.key==='ArrowRight'){r[(i+1)%r.length].checked=true}else if(e.key==='ArrowLeft'){r[(i-1+r.length)%r.length].checked=true}});})();
</script>
`

func altText(img models.ImageItem, k int) string {
	if img.Alt != "" {
		return img.Alt
	}
	return fmt.Sprintf("Product image %d", k)
}

func attr(s string) string {
	return html.EscapeString(s)
}
