package main

import (
	"oss.terrastruct.com/arrange/arrangecli"
	"oss.terrastruct.com/arrange/lib/xmain"
)

func main() {
	xmain.Main(arrangecli.Run)
}
