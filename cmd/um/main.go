// Command um runs a universal machine program.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"um/pkg/loader"
	"um/pkg/metrics"
	"um/pkg/vm"
	"um/pkg/vmerrors"
)

func main() {
	tracePath := flag.String("trace", "", "write a per-instruction trace to this file")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: um [-trace <path>] [-metrics-addr <host:port>] <program-file>")
		os.Exit(1)
	}
	programPath := flag.Arg(0)

	program, err := loader.Load(programPath)
	if err != nil {
		reportAndExit(err)
	}

	var traceLogger *log.Logger
	if *tracePath != "" {
		f, err := os.OpenFile(*tracePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("opening trace file: %v", err)
		}
		defer f.Close()
		traceLogger = log.New(f, "", 0)
	}

	var collector *metrics.Collector
	if *metricsAddr != "" {
		collector = metrics.New()
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	host := vm.NewStdioHost(os.Stdin, os.Stdout)

	machine := vm.New(program, host, vm.WithTrace(traceLogger), vm.WithMetrics(collector))

	runErr := machine.Run()
	if err := host.Close(); err != nil {
		log.Printf("flushing output: %v", err)
	}
	if runErr != nil {
		reportAndExit(runErr)
	}
}

func reportAndExit(err error) {
	if fc, ok := vmerrors.As(err); ok {
		fmt.Fprintf(os.Stderr, "um: %v\n", fc)
		if fc.Kind == vmerrors.Invocation {
			os.Exit(1)
		}
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "um: %v\n", err)
	os.Exit(1)
}
