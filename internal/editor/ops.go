// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import "fmt"

// Op is a single edit sent by an editor panel. Which fields are read
// depends on Name.
type Op struct {
	Name        string `json:"op"`
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Price       string `json:"price,omitempty"`
	Currency    string `json:"currency,omitempty"`
	HTML        string `json:"html,omitempty"`
	Markdown    string `json:"markdown,omitempty"`
	Logo        string `json:"logo,omitempty"`
	URL         string `json:"url,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Index       int    `json:"index,omitempty"`
	Label       string `json:"label,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	SVG         string `json:"svg,omitempty"`
}

// Apply dispatches op to the matching Session method. For add operations
// it returns the new item id.
func (s *Session) Apply(op Op) (string, error) {
	switch op.Name {
	case "set_title":
		return "", s.SetTitle(op.Title)
	case "set_subtitle":
		return "", s.SetSubtitle(op.Subtitle)
	case "set_price":
		return "", s.SetPrice(op.Price, op.Currency)
	case "set_description":
		return "", s.SetDescription(op.HTML)
	case "set_description_markdown":
		return "", s.SetDescriptionMarkdown(op.Markdown)
	case "set_logo":
		return "", s.SetLogo(op.Logo)
	case "add_image":
		return s.AddImage(op.URL, op.Alt)
	case "update_image":
		return "", s.UpdateImage(op.ID, op.URL, op.Alt)
	case "remove_image":
		return "", s.RemoveImage(op.ID)
	case "move_image":
		return "", s.MoveImage(op.ID, op.Index)
	case "add_spec":
		return s.AddSpec(op.Label, op.Value)
	case "update_spec":
		return "", s.UpdateSpec(op.ID, op.Label, op.Value)
	case "remove_spec":
		return "", s.RemoveSpec(op.ID)
	case "update_company_section":
		return "", s.UpdateCompanySection(op.ID, op.Title, op.Description, op.SVG)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOp, op.Name)
	}
}
