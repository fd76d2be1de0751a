package main

import (
	"github.com/scanward/scanward/cmd"
)

func main() {
	cmd.Execute()
}
