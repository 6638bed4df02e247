//go:build !windows

package render

import "os"

func enableVT(*os.File) {}
