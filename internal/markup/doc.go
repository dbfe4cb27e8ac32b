// Package markup implements the terse compilation core.
//
// A terse source declares one element per logical line and expresses
// nesting through leading spaces:
//
//	div#main.page
//	    h1 "Welcome"
//	    a href=/docs .link
//	        "Read the docs"
//
// Compilation runs in three passes, each exposed separately:
//
//  1. BuildLevelTree groups raw lines into a tree of RawNode values that
//     mirrors indentation, merging continuation lines and long-text blocks.
//  2. BuildAST tokenizes and classifies every RawNode into an Element.
//  3. Renderer.Render serializes the Element tree to an HTML fragment.
//
// Every pass allocates its own state, so concurrent calls never share
// anything. Content and attribute values are emitted as written: no HTML
// escaping is applied.
package markup
