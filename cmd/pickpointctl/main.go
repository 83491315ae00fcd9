package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"pickpoint/internal/client"
)

const usage = `usage: pickpointctl [-addr URL] [-code CODE] <command> [args]

commands:
  stats                         order counters
  order <id>                    show order
  find <barcode>                find order by barcode
  issue <id> <curator|internID> hand off order
  return <id> <reason> [helper] return order
  interns                       list interns
  balance                       curator balance
  withdraw                      pay out curator balance (needs -code)
  salary <internID>             pay out intern salary
`

func main() {
	addr := flag.String("addr", envOr("PICKPOINT_URL", "http://localhost:9091"), "server base url")
	code := flag.String("code", os.Getenv("PICKPOINT_ACCESS_CODE"), "curator access code")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.New(*addr, *timeout)
	if *code != "" {
		if err := c.Login(ctx, *code); err != nil {
			fail(err)
		}
	}
	out, err := dispatch(ctx, c, flag.Args())
	if err != nil {
		fail(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func dispatch(ctx context.Context, c *client.Client, args []string) (any, error) {
	cmd, rest := args[0], args[1:]
	need := func(n int) error {
		if len(rest) < n {
			return fmt.Errorf("%s: expected %d arguments", cmd, n)
		}
		return nil
	}
	switch cmd {
	case "stats":
		return c.Stats(ctx)
	case "order":
		if err := need(1); err != nil {
			return nil, err
		}
		return c.GetOrder(ctx, rest[0])
	case "find":
		if err := need(1); err != nil {
			return nil, err
		}
		return c.FindByBarcode(ctx, rest[0])
	case "issue":
		if err := need(2); err != nil {
			return nil, err
		}
		return c.Issue(ctx, rest[0], rest[1])
	case "return":
		if err := need(2); err != nil {
			return nil, err
		}
		helper := ""
		if len(rest) > 2 {
			helper = rest[2]
		}
		return c.Return(ctx, rest[0], rest[1], helper)
	case "interns":
		return c.ListInterns(ctx)
	case "balance":
		return c.Balance(ctx)
	case "withdraw":
		return c.WithdrawCurator(ctx)
	case "salary":
		if err := need(1); err != nil {
			return nil, err
		}
		return c.WithdrawSalary(ctx, rest[0])
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "pickpointctl:", err)
	os.Exit(1)
}
