// cmd/sigcluster/main.go
package main

import (
	"mutsig/internal/appshell"
	"mutsig/internal/clusterapp"
)

func main() { appshell.Main(clusterapp.RunContext) }
