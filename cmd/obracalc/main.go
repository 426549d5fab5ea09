// Command obracalc estimates construction materials and manages saved budgets
// from the terminal.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
