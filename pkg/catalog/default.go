package catalog

import "github.com/jackparrish/deskfolio/pkg/geometry"

// Default returns the built-in desktop: seven photographs, the Seenit case
// study, a greeting card and a mail tile.
func Default() *Catalog {
	photo := func(id, label string, shape geometry.Shape, src string) Tile {
		return Tile{
			ID:     id,
			Label:  label,
			Action: OpenExternal("https://example.com"),
			Shape:  shape,
			Visual: Visual{Kind: VisualImage, Src: src},
		}
	}
	return MustNew(
		photo("forest", "FOREST.JPG", geometry.Landscape, "/static/icons/forest.jpg"),
		photo("sweden", "SWEDEN.JPG", geometry.Landscape, "/static/icons/sweden.jpg"),
		photo("seenit-image", "SEENIT.JPG", geometry.Portrait, "/static/icons/seenit.jpg"),
		photo("cornfields", "CORNFIELDS.JPG", geometry.Portrait, "/static/icons/cornfields.jpg"),
		photo("clouds", "CLOUDS.JPG", geometry.Portrait, "/static/icons/clouds.jpg"),
		photo("post-sale", "POST-SALE.JPG", geometry.Portrait, "/static/icons/post-sale@3x.jpg"),
		photo("verification", "VERIFICATION.JPG", geometry.Portrait, "/static/icons/verification@3x.jpg"),
		Tile{
			ID:     "seenit",
			Label:  "SEENIT",
			Action: Navigate("/case/seenit"),
			Shape:  geometry.Landscape,
			Visual: Visual{Kind: VisualVideo, Src: "/static/icons/seenit.mp4", FocalY: 40},
		},
		Tile{
			ID:     "hello",
			Label:  "HELLO.TXT",
			Action: Navigate("/about"),
			Shape:  geometry.Square,
			Visual: Visual{
				Kind:       VisualText,
				Text:       "Product designer working on tools people open every day",
				Background: "#F2E8CF",
				Year:       "2025",
				Caption:    "about",
			},
			HideLabel: true,
		},
		Tile{
			ID:     "mail",
			Label:  "MAIL",
			Action: ComposeEmail("hello@example.com"),
			Shape:  geometry.Square,
			Visual: Visual{Kind: VisualText, Text: "Say hello", Background: "#1F3A5F"},
		},
	)
}
