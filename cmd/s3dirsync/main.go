package main

import (
	"github.com/clustervault/s3dirsync/cmd/s3dirsync/cmd"
)

func main() {
	cmd.Execute()
}
