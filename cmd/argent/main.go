// Command argent is a terminal client for the budget engine. It shares the
// storage backends of the API server, defaulting to a local bolt file.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
