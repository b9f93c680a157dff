// Command subsl splits its input on every occurrence of a byte sequence.
//
//	subsl -n '\r\n\r\n' request.txt
//	printf 'a::b::c' | subsl -n '::' -f json
//	subsl --needle-hex 00 --stream --skip-empty < records.bin
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
