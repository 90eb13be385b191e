package cli

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/config"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list PATH...",
		Aliases: []string{"ls"},
		Short:   "List declared assets",
		Args:    cobra.MinimumNArgs(1),
		RunE:    listHandler,
	}
	cmd.Flags().String("kind", "", "Only list this kind (script or style)")
	cmd.Flags().String("location", "", "Only list this location (frontend or backend)")
	return cmd
}

func listHandler(cmd *cobra.Command, args []string) error {
	var (
		kind hxasset.Kind
		loc  hxasset.Location
		err  error
	)
	if s, _ := cmd.Flags().GetString("kind"); s != "" {
		if kind, err = hxasset.ParseKind(s); err != nil {
			return err
		}
	}
	if s, _ := cmd.Flags().GetString("location"); s != "" {
		if loc, err = hxasset.ParseLocation(s); err != nil {
			return err
		}
	}

	cfg, err := config.Load(cmd.Context(), args...)
	if err != nil {
		return err
	}

	var data [][]string
	for _, d := range cfg.Filter(kind, loc) {
		version := d.VersionString()
		if version == hxasset.VersionAuto {
			version = "-"
		}
		deps := "-"
		if len(d.Deps) > 0 {
			deps = strings.Join(d.Deps, ",")
		}
		data = append(data, []string{string(d.Kind), d.Handle, d.Location, d.Source(), version, deps, flags(d)})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"KIND", "HANDLE", "LOCATION", "SOURCE", "VERSION", "DEPS", "FLAGS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// flags summarizes the declaration options that are not columns.
func flags(d config.Declaration) string {
	var f []string
	if d.RegisterOnly {
		f = append(f, "register-only")
	}
	if d.InFooter {
		f = append(f, "footer")
	}
	if d.Kind == hxasset.KindStyle && d.Media != string(hxasset.MediaAll) {
		f = append(f, "media="+d.Media)
	}
	if d.EnabledIf != "" {
		f = append(f, "if="+d.EnabledIf)
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, " ")
}
