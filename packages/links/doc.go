// Package links finds broken links in a site and applies the broken link
// policies of its descriptor.
//
// Checker resolves the internal links of the navbar, the footer and every doc
// body. Links to .md/.mdx files are matched against the doc sources and are
// governed by onBrokenMarkdownLinks. Every other internal link is matched
// against the known routes (doc routes, extra routes such as generated index
// pages, and files under the static directory) and is governed by
// onBrokenLinks.
//
// Prober optionally checks external URLs over HTTP with bounded concurrency
// and a request rate limit. Its findings are governed by onBrokenLinks.
//
// Apply sorts findings into a Report: warn records a warning, error records
// an error and makes Apply return a *BrokenLinksError, ignore records nothing.
package links
