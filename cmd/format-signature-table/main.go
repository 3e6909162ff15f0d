// cmd/format-signature-table/main.go
package main

import (
	"mutsig/internal/appshell"
	"mutsig/internal/formatapp"
)

func main() { appshell.Main(formatapp.RunContext) }
