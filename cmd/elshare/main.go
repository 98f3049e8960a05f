// Command elshare splits secrets into Shamir shares and moves them
// between parties encrypted under ElGamal.
package main

import (
	"os"

	"github.com/f3rmion/elshare/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
