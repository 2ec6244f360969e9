package main

import (
	"github.com/actionchain/actionchain/app/tooling/chainctl/cmd"
)

func main() {
	cmd.Execute()
}
