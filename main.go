package main

import "github.com/ryclarke/gh-metadata-migrator/cmd"

func main() {
	cmd.Execute()
}
