// cmd/simplexplot/main.go
package main

import (
	"mutsig/internal/appshell"
	"mutsig/internal/simplexapp"
)

func main() { appshell.Main(simplexapp.RunContext) }
