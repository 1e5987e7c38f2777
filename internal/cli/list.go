package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayleafwalker/operator-upgradepath/internal/catalog"
	"github.com/bayleafwalker/operator-upgradepath/internal/config"
	"github.com/bayleafwalker/operator-upgradepath/internal/graph"
	"github.com/bayleafwalker/operator-upgradepath/internal/report"
)

func newListCommand(e *env) *cobra.Command {
	var catalogRef, operator string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the packages of a catalog, or the channels of one package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(e.v)
			if err != nil {
				return err
			}
			log := setupLogger(settings.LogLevel, e.errOut)
			log.V(1).Info("list catalog", "catalog", catalogRef, "workingDir", settings.WorkingDir)

			cache := catalog.NewCache(e.fs, settings.WorkingDir)
			if operator == "" {
				names, err := cache.Packages(catalogRef)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(e.out, report.RenderPackageList(names))
				return err
			}

			records, err := cache.LoadPackage(catalogRef, operator)
			if err != nil {
				return err
			}
			cat, err := graph.Build(records)
			if err != nil {
				return err
			}
			pkg, ok := cat.Package(operator)
			if !ok {
				return fmt.Errorf("%w: %q has no channels", catalog.ErrPackageNotFound, operator)
			}
			_, err = fmt.Fprint(e.out, report.RenderChannelTable(pkg))
			return err
		},
	}

	cmd.Flags().StringVar(&catalogRef, "catalog", "", "catalog image reference")
	cmd.Flags().StringVar(&operator, "operator", "", "package to show channels for")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}
