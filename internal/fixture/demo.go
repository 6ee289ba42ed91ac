package fixture

import "github.com/bnema/lasso/internal/geometry"

func box(left, top, right, bottom float64) geometry.Rect {
	return geometry.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Demo builds the canned 800x480 page used by the sandbox: navigation
// links, call-to-action buttons, styled cards whose children dedup away, a
// plain list, plus a hidden control and a sub-5px icon that the kernel must
// skip.
func Demo() *Document {
	header := New(Spec{
		ID: "header", Tag: "div", Bounds: box(0, 0, 800, 60),
		Styles: map[string]string{"background-color": "rgb(24, 24, 37)"},
	}).Append(
		New(Spec{ID: "nav-home", Tag: "a", Text: "Home", Href: "/home", Bounds: box(20, 15, 100, 45)}),
		New(Spec{ID: "nav-docs", Tag: "a", Text: "Docs", Href: "/docs", Bounds: box(120, 15, 200, 45)}),
		New(Spec{ID: "nav-about", Tag: "a", Text: "About", Href: "/about", Bounds: box(220, 15, 300, 45)}),
	)

	hero := New(Spec{ID: "hero", Tag: "section", Bounds: box(0, 70, 560, 200)}).Append(
		New(Spec{ID: "hero-title", Tag: "h1", Text: "Lasso the page", Bounds: box(40, 80, 400, 120)}),
		New(Spec{
			ID: "hero-copy", Tag: "p",
			Text:   "Hold the trigger key and drag a box around anything clickable.",
			Bounds: box(40, 130, 520, 160),
		}),
		New(Spec{
			ID: "cta-start", Tag: "button", Text: "Get started", Bounds: box(40, 170, 160, 198),
			Styles: map[string]string{"border-radius": "6px", "background-color": "rgb(137, 180, 250)"},
		}),
		New(Spec{
			ID: "cta-more", Tag: "button", Text: "Learn more", Bounds: box(180, 170, 300, 198),
			Styles: map[string]string{"border-style": "solid"},
		}),
	)

	cards := New(Spec{ID: "cards", Tag: "div", Bounds: box(0, 210, 800, 380)})
	cardBoxes := []geometry.Rect{box(40, 220, 240, 370), box(290, 220, 490, 370), box(540, 220, 740, 370)}
	names := []string{"alpha", "beta", "gamma"}
	for i, b := range cardBoxes {
		name := names[i]
		cards.Append(New(Spec{
			ID: "card-" + name, Tag: "div", Bounds: b,
			Styles: map[string]string{"border-style": "solid", "border-radius": "8px"},
		}).Append(
			New(Spec{
				ID: "card-" + name + "-img", Tag: "img", Source: "/img/" + name + ".png",
				Bounds: box(b.Left+10, b.Top+10, b.Right-10, b.Top+80),
			}),
			New(Spec{
				ID: "card-" + name + "-title", Tag: "h3", Text: "Card " + name,
				Bounds: box(b.Left+10, b.Top+90, b.Right-10, b.Top+110),
			}),
			New(Spec{
				ID: "card-" + name + "-link", Tag: "a", Text: "Open", Href: "/card/" + name,
				Bounds: box(b.Left+10, b.Top+120, b.Right-10, b.Top+140),
			}),
		))
	}

	sidebar := New(Spec{ID: "sidebar", Tag: "ul", Bounds: box(600, 70, 780, 200)}).Append(
		New(Spec{ID: "item-1", Tag: "li", Text: "Release notes", Bounds: box(608, 80, 772, 104)}),
		New(Spec{ID: "item-2", Tag: "li", Text: "Keyboard map", Bounds: box(608, 110, 772, 134)}),
		New(Spec{ID: "item-3", Tag: "li", Text: "Bug tracker", Bounds: box(608, 140, 772, 164)}),
	)

	extras := []*Element{
		New(Spec{ID: "tiny-icon", Tag: "img", Source: "/img/dot.png", Bounds: box(788, 10, 791, 13)}),
		New(Spec{
			ID: "ghost-button", Tag: "button", Text: "You cannot see me",
			Bounds: box(400, 400, 520, 430),
			Styles: map[string]string{"display": "none"},
		}),
		New(Spec{ID: "footer-note", Tag: "p", Text: "lasso demo page", Bounds: box(40, 440, 760, 470)}),
	}

	body := New(Spec{ID: "body", Tag: "body", Bounds: box(0, 0, 800, 480)}).
		Append(header, hero, cards, sidebar)
	body.Append(extras...)

	root := New(Spec{ID: "root", Tag: "html", Bounds: box(0, 0, 800, 480)}).Append(body)
	return NewDocument(root)
}
