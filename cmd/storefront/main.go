// cmd/storefront/main.go
package main

import (
	"os"

	"github.com/javajoker/stylehub/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
