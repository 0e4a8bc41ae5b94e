// Package render turns a case-study body into HTML.
//
// A body is markdown with embedded component tags (see package markup).
// The [Engine] renders text segments with goldmark, sanitizes the result
// with bluemonday and hands each component element to the [Renderer]
// registered for its tag in a [Registry]:
//
//   - CSImage: image or video figure with an aspect-ratio preset and caption
//   - CSTable: header row and row matrix
//   - CSYouTube: embedded video player for a YouTube URL
//   - Section: titled group with tight, normal or loose spacing
//
// Rendering is best effort. Tags with no renderer keep their children in
// a neutral wrapper, and a component that fails shows an inline error box
// instead of failing the page. Both are reported on the [Result].
//
//	eng := render.New()
//	res, err := eng.Render(ctx, doc.Slug, doc.Body)
//	page := res.HTML
//
// [PlainText] and [Markdown] convert rendered HTML back into text for
// search snippets, the terminal desktop and the MCP tools.
package render
