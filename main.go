package main

import (
	"github.com/rowforge/rowforge/lib"
)

func main() {
	lib.GlobalRowforge = lib.NewRowforge()
	lib.GlobalRowforge.ArgParse()
	lib.GlobalRowforge.Notice("Done")
}
