package cli

import (
	"github.com/spf13/cobra"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/lib/generator"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [DIR...]",
		Short: "Generate registration code for static files",
		Long: `Scan directories for .js and .css files and write ` + generator.DefaultOutput + `
into each, declaring RegisterAssets(ctx, reg). Defaults to the current
directory.`,
		RunE: generateHandler,
	}
	cmd.Flags().Bool("dry-run", false, "Show what would be generated without writing files")
	cmd.Flags().String("package", "", "Package name of the generated file")
	cmd.Flags().String("prefix", "/static/", "URL prefix for asset sources")
	cmd.Flags().String("location", string(hxasset.LocationFrontend), "Location the assets are added for")
	cmd.Flags().Bool("footer", false, "Place scripts in the footer")
	return cmd
}

func generateHandler(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	pkg, _ := cmd.Flags().GetString("package")
	prefix, _ := cmd.Flags().GetString("prefix")
	s, _ := cmd.Flags().GetString("location")
	footer, _ := cmd.Flags().GetBool("footer")

	loc, err := hxasset.ParseLocation(s)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	gen := generator.New(generator.Options{
		DryRun:          dryRun,
		Package:         pkg,
		Prefix:          prefix,
		Location:        loc,
		ScriptsInFooter: footer,
		Out:             cmd.OutOrStdout(),
	})
	return gen.Generate(args...)
}

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [DIR...]",
		Short: "Remove generated " + generator.DefaultOutput + " files",
		Long:  `Remove generated files. DIR/... removes them below DIR as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if len(args) == 0 {
				args = []string{"."}
			}
			gen := generator.New(generator.Options{DryRun: dryRun, Out: cmd.OutOrStdout()})
			return gen.Clean(args...)
		},
	}
	cmd.Flags().Bool("dry-run", false, "Show what would be removed")
	return cmd
}
