package guide

import "embed"

//go:embed chapters/*.md
var chaptersFS embed.FS
