// cmd/alncat/main.go
package main

import (
	"alnkit/internal/appshell"
	"alnkit/internal/catapp"
)

func main() { appshell.Main(catapp.RunContext) }
