package main

import (
	"os"

	"github.com/msto63/acid/cmd/acid/cmd"
	mdwerror "github.com/msto63/acid/foundation/core/error"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(mdwerror.GetCode(err).ExitStatus())
	}
}
