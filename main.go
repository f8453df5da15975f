package main

import (
	"fmt"
	"os"
	"reportdesk/cmd/reportdesk"
)

func main() {
	// Execute root
	if err := reportdesk.Command.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
