// Package build reports what binary is running. tag and time are set at link
// time, e.g. -ldflags "-X github.com/allfs/quadstorvtl/build.tag=v1.2".
package build

import (
	"fmt"
	"runtime"

	"github.com/allfs/quadstorvtl/catalog"
)

var (
	tag      = "undefined"
	time     = "unknown"
	platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

type Info struct {
	GoVersion string `json:"go_version"`
	Tag       string `json:"tag"`
	Time      string `json:"time"`
	Platform  string `json:"platform"`

	// Catalog is the revision of the hardware tables compiled in.
	Catalog int `json:"catalog"`
}

func (b Info) Short() string {
	return fmt.Sprintf("vtlconsole %s (catalog v%d, %s, built %s, %s)",
		b.Tag, b.Catalog, b.Platform, b.Time, b.GoVersion,
	)
}

func GetInfo() Info {
	return Info{
		GoVersion: runtime.Version(),
		Tag:       tag,
		Time:      time,
		Platform:  platform,
		Catalog:   catalog.Version,
	}
}
