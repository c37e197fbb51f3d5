// Package docs scans a docs directory of markdown files.
//
// Each .md or .mdx file becomes a Doc with an id, a route and the links found
// in its body. Front matter may override the id, slug and title:
//
//	---
//	id: docker
//	slug: /install/docker
//	title: Running in Docker
//	---
//
// Files and directories whose names start with "_" or "." are skipped.
package docs
