// Package textutil holds small text helpers shared by the renderer and the
// CLI: asset file slugs and line indentation.
package textutil
