// Command xesmeta edits, stores and checks XES export step configurations.
//
// Usage:
//
//	xesmeta <command> [flags]
//
// Commands:
//
//	save     store a step configuration (from an XML fragment and/or --set)
//	load     print a stored step configuration
//	steps    list the steps stored for a pipeline
//	fields   print the row schema after the step appends its column
//	check    run the design-time check; exits 1 on ERROR remarks
//	health   report store health
//	version  print build information
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], newStreams()))
}
