// Command cypher2sql translates Cypher MATCH/RETURN patterns to SQL.
package main

import (
	"os"

	"github.com/roach88/cypher2sql/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
