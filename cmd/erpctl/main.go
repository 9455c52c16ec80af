// Command erpctl is the terminal client for the erp inventory service.
package main

import (
	"fmt"
	"os"

	"erp/cmd/erpctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
