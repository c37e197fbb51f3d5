// Package sidebar loads sidebar definition files.
//
// A definition maps sidebar ids to ordered item trees:
//
//	guide:
//	  - intro                       # doc id shorthand
//	  - type: category
//	    label: Installation
//	    link: {type: generated-index}
//	    items: [installation/docker]
//	  - type: autogenerated
//	    dirName: modules
//	  - type: link
//	    label: GitHub
//	    href: https://github.com/example/site
//
// Autogenerated items are expanded from the list of doc ids found on disk
// (Expand), after which DocIDs and Routes describe the complete sidebars.
package sidebar
