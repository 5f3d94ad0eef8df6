// ABOUTME: Embeds web/static/ stylesheets for serving via the HTTP server.
// ABOUTME: Uses explicit subdirectory globs because //go:embed static/* does not recurse.
package web

import "embed"

//go:embed static/css/*.css
var StaticFS embed.FS

// stylesheetFile is the path of the application stylesheet inside StaticFS.
const stylesheetFile = "static/css/application.css"
