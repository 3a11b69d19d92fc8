// cmd/alnstats/main.go
package main

import (
	"alnkit/internal/appshell"
	"alnkit/internal/statsapp"
)

func main() { appshell.Main(statsapp.RunContext) }
