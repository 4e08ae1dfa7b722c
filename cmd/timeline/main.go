package main

import "github.com/kode4food/timeline/cmd/timeline/cmd"

func main() {
	cmd.Execute()
}
