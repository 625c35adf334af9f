// Package content embeds the default course materials: the Markdown guides
// and the third-party MCP server catalog. A synced content repository takes
// precedence over these copies at runtime.
package content

import "embed"

//go:embed guides/*.md servers/catalog.json
var FS embed.FS
