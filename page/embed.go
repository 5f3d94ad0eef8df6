// ABOUTME: Embeds the built-in page definitions shipped with the binary.
// ABOUTME: Each definitions/<name>.yaml file becomes a selectable page variant.
package page

import "embed"

//go:embed definitions/*.yaml
var definitionsFS embed.FS
