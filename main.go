package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/bayleafwalker/operator-upgradepath/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
