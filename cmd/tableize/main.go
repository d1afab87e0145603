// Tableize demonstrates memoized pure functions.
//
// Usage:
//
//	tableize fib 90                   # memoized recursion
//	tableize levenshtein kitten sitting
//	tableize pi                       # Monte Carlo estimate
//	tableize tune                     # hyperparameter search
//	tableize validate user.json
//	tableize price --base 1000 --tax 0.15 --discount 0.1
//	tableize config                   # effective configuration
//
// Settings come from --config and TABLEIZE_* environment variables, for example
// TABLEIZE_MEMO_STORE=lru TABLEIZE_MEMO_CAPACITY=64.
package main

import (
	"os"

	"github.com/on-the-ground/tableize_go/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
