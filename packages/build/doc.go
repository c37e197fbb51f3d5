// Package build runs the pre-render pipeline of a site.
//
// Run takes an already loaded descriptor and executes, in order:
//
//   - resources: resolve the favicon, custom CSS and sidebar definition files
//   - docs: scan the docs directory for ids, routes and links
//   - sidebars: load the sidebar definition, expand autogenerated items and
//     check every sidebar and doc reference
//   - links: find broken links and apply the broken link policies
//   - artifact: write site-config.json for the renderer
//
// Any stage error stops the pipeline. Broken links under an error policy stop
// it before the artifact is written; the Result still carries the report.
package build
