package svgregion

import (
	"embed"
	"io/fs"
)

// ResourcePrefix marks paths resolved against the resource file system
// of a Renderer rather than the disk, as in ":/en_layout.svg".
const ResourcePrefix = ":/"

// DefaultLayout is the English stenotype layout shipped with the package.
const DefaultLayout = ResourcePrefix + "en_layout.svg"

var (
	//go:embed resources/*.svg
	resourceFiles embed.FS

	//go:embed resources/placeholder.svg
	placeholderSVG string
)

// Resources holds the layouts shipped with the package.
var Resources fs.FS

func init() {
	sub, err := fs.Sub(resourceFiles, "resources")
	if err != nil {
		panic(err)
	}
	Resources = sub
}
