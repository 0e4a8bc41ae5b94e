// Package pkg provides the libraries behind Deskfolio, a portfolio shown as a
// desktop of floating tiles that open long-form case studies.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Desktop: [catalog], [geometry], [tile], [follower] and [workspace]
//     describe the tiles, place them, and track drags, focus and stacking.
//  2. Content: [content], [content/markup], [render] and [render/page] load
//     MDX case studies and turn them into HTML, markdown and plain text.
//  3. Infrastructure: [cache], [config], [errors], [observability],
//     [buildinfo] and [site] wire the pieces into an HTTP server and a
//     static exporter.
//
// # Data Flow
//
// A request for a case study travels:
//
//	content.Source (files or MongoDB)
//	         ↓
//	    [content] package (front matter + body)
//	         ↓
//	    [render] package (components → sanitized HTML)
//	         ↓
//	    [render/page] package (templates)
//	         ↓
//	    [site] package (cache, routes, static export)
//
// The desktop is computed independently:
//
//	[catalog] tiles → [geometry].Compute → [workspace] (drag, z-order, follower)
//
// # Quick Start
//
// Lay out the default desktop for a laptop viewport:
//
//	import (
//	    "github.com/jackparrish/deskfolio/pkg/catalog"
//	    "github.com/jackparrish/deskfolio/pkg/geometry"
//	    "github.com/jackparrish/deskfolio/pkg/workspace"
//	)
//
//	ws := workspace.New(catalog.Default(), workspace.Options{
//	    Viewport: geometry.Viewport{Width: 1440, Height: 900},
//	})
//	defer ws.Close()
//	for _, p := range ws.Placements() {
//	    fmt.Println(p.ID, p.X, p.Y, p.Rotation)
//	}
//
// Serve the site:
//
//	srv := site.New(site.Options{
//	    Repo: content.NewRepository(content.NewDirSource("content"), nil),
//	})
//	err := srv.ListenAndServe(ctx, site.ServeOptions{Addr: ":8080"})
//
// # Errors
//
// Packages return *errors.Error values carrying a machine-readable code.
// Use errors.IsNotFound to tell a missing case study from a broken one.
//
// # Caching
//
// Rendered pages are keyed by slug, content hash and format, so editing a
// case study invalidates its entries without an explicit purge.
package pkg
