// Package template converts pane layouts to and from a plain nested-record
// format suitable for storage.
//
// # Format
//
// A template is either a branch or a leaf. Branches carry a "split"
// discriminator and their children:
//
//	{
//	  "split": "vert",
//	  "ratio": [1, 3],
//	  "children": [
//	    {"id": "title", "template": "titlebar", "gravity": "header"},
//	    {
//	      "split": "tab",
//	      "currentTab": 0,
//	      "children": [
//	        {"id": "main.go", "template": "editor", "extra": {"line": 12}},
//	        {"id": "go.mod", "template": "editor"}
//	      ]
//	    }
//	  ]
//	}
//
// Split values:
//   - horiz, vert: a split; "ratio" is optional and defaults to all ones
//   - tab: a tabbed branch; "currentTab" is optional and defaults to 0
//   - group: a group; "header" is required and "children" must hold exactly
//     one horiz or vert split
//
// Leaves require "id" and "template"; "extra" is an opaque payload kept as
// decoded. Any node may carry "gravity" and "group" placement tags. The
// field names are a storage contract: renaming one breaks saved layouts.
//
// # Round Trip
//
// [Save] always writes "ratio" and "currentTab", so templates produced by
// [Save] load back to structurally equal trees and save again to the same
// template. Ratios that sum to less than 1 are rescaled on load, as they
// are for any split.
//
// # Errors
//
// [Load] rejects malformed templates as a whole: it never returns a
// partially built tree. Errors carry [errors.ErrCodeInvalidTemplate] and
// name the offending node by path, such as "root.children[1]".
//
// [errors.ErrCodeInvalidTemplate]: github.com/openopus/ng-pane-manager2-sub000/pkg/errors.ErrCodeInvalidTemplate
package template
