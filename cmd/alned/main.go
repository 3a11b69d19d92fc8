// cmd/alned/main.go
package main

import (
	"alnkit/internal/appshell"
	"alnkit/internal/editapp"
)

func main() { appshell.Main(editapp.RunContext) }
