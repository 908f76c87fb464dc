package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, args, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flags.version {
		fmt.Printf("html2pdf %s\n", Version)
		return
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	env := DefaultEnv()

	if err := loadEnvConfig(flags, env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	svcOpts, err := serviceOptions(flags, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	poolSize := html2pdf.ResolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := NewPool(poolSize, svcOpts...)
	defer func() {
		if closer, ok := pool.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	if err := runConvert(context.Background(), args, flags, pool, env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
