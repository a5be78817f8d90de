// main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var (
	showVersion = flag.Bool("version", false, "Show version")
	silent      = flag.Bool("silent", false, "Disable all log output")
)

// appVersion is set at build time via -ldflags "-X main.appVersion=x.y.z"
var appVersion = "dev"

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Queuecast v%s\n", appVersion)
		return
	}

	if *silent {
		log.SetOutput(io.Discard)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	if err := run(sc, *silent); err != nil {
		log.Fatalf("queuecast: %v", err)
	}
}
