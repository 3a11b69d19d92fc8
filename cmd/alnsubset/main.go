// cmd/alnsubset/main.go
package main

import (
	"alnkit/internal/appshell"
	"alnkit/internal/subsetapp"
)

func main() { appshell.Main(subsetapp.RunContext) }
