// Package content loads case-study documents.
//
// A document is a text file made of a front matter block followed by a
// body written in markdown with embedded component tags:
//
//	---
//	title: Seenit
//	subtitle: Video feedback for teams
//	date: 2024
//	role: Lead designer
//	client: Seenit Ltd
//	---
//
//	<Section title="Overview">
//	Seenit lets teams collect video from anyone.
//	</Section>
//
// Front matter is YAML between "---" fences or TOML between "+++" fences.
// Documents come from a [Source]: a directory of .mdx/.md files
// ([FSSource]) or a MongoDB collection ([MongoSource]). The [Repository]
// enumerates and loads them, mapping failures onto the NotFound and
// ParseError error kinds. Rendering the body is the job of package render.
package content
