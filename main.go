package main

import (
	"os"

	"github.com/glbter/fund-returns/cmd"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "audit" {
		cmd.ExecuteAudit()
		return
	}

	cmd.Execute()
}
