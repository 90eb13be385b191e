package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/config"
	"github.com/pthm/hxasset/internal/envconfig"
	"github.com/pthm/hxasset/lib/encoding"
	"github.com/pthm/hxasset/page"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render PATH...",
		Short: "Print the tags a page would receive",
		Long: `Load the declarations, dispatch them for one location through a page
host, and print the head and footer markup.

Predicates named by enabled_if are false unless listed with --enable.
Providers are bound with --provide NAME=VALUE; "{handle}" in VALUE is
replaced by the asset handle. Assets whose provider is not bound are
skipped and reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: renderHandler,
	}
	cmd.Flags().String("location", string(hxasset.LocationFrontend), "Page location (frontend or backend)")
	cmd.Flags().StringSlice("enable", nil, "Predicate names that evaluate to true")
	cmd.Flags().StringArray("provide", nil, "Provider binding NAME=VALUE")
	cmd.Flags().String("default-version", "", "Version for assets declared without one (default from HXASSET_VERSION)")
	cmd.Flags().Bool("sensitive", false, "Encrypt the manifest instead of signing it (needs HXASSET_KEY)")
	return cmd
}

func renderHandler(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger(cmd)

	s, _ := cmd.Flags().GetString("location")
	loc, err := hxasset.ParseLocation(s)
	if err != nil {
		return err
	}
	enabled, _ := cmd.Flags().GetStringSlice("enable")
	provide, _ := cmd.Flags().GetStringArray("provide")
	version, _ := cmd.Flags().GetString("default-version")
	if version == "" {
		version = envconfig.DefaultVersion()
	}
	sensitive, _ := cmd.Flags().GetBool("sensitive")

	cfg, err := config.Load(ctx, args...)
	if err != nil {
		return err
	}
	funcs, err := renderFuncs(cfg, enabled, provide)
	if err != nil {
		return err
	}

	pageOpts := []page.Option{page.WithDefaultVersion(version), page.WithLogger(log)}
	if key := envconfig.Key(); key != nil {
		enc, err := encoding.NewEncoder(key)
		if err != nil {
			return err
		}
		pageOpts = append(pageOpts, page.WithEncoder(enc))
		if sensitive {
			pageOpts = append(pageOpts, page.Sensitive())
		}
	} else if sensitive {
		return fmt.Errorf("--sensitive needs HXASSET_KEY")
	}

	assets := page.New(pageOpts...)
	reg := hxasset.NewRegistry(hxasset.HostOf(assets), hxasset.WithLogger(log))
	if err := cfg.Apply(ctx, reg, funcs); err != nil {
		return err
	}

	rep, err := reg.DispatchForContext(ctx, loc)
	if err != nil {
		log.WarnContext(ctx, "some assets were skipped", "error", err)
	}
	for _, skip := range rep.Skipped {
		log.InfoContext(ctx, "skipped", "asset", skip.Entry.Asset(), "reason", skip.Reason)
	}

	return writePage(ctx, cmd.OutOrStdout(), assets)
}

func writePage(ctx context.Context, w io.Writer, assets *page.Assets) error {
	printf(w, "<!-- head -->\n")
	if err := assets.Head().Render(ctx, w); err != nil {
		return err
	}
	printf(w, "\n<!-- footer -->\n")
	if err := assets.Footer().Render(ctx, w); err != nil {
		return err
	}
	printf(w, "\n")
	return nil
}

// renderFuncs binds every function name cfg refers to, so Apply never fails
// on a name. Unlisted predicates are false and unbound providers fail.
func renderFuncs(cfg *config.Config, enabled, provide []string) (config.Funcs, error) {
	funcs := config.Funcs{
		Predicates: make(map[string]hxasset.Predicate),
		Providers:  make(map[string]hxasset.ProviderFunc),
	}

	values := make(map[string]string)
	for _, p := range provide {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return funcs, fmt.Errorf("invalid --provide %q: want NAME=VALUE", p)
		}
		values[name] = value
	}

	for _, d := range cfg.Declarations {
		if name := d.EnabledIf; name != "" {
			on := slices.Contains(enabled, name)
			funcs.Predicates[name] = func(context.Context) bool { return on }
		}
		if name := d.Provider; name != "" {
			value, ok := values[name]
			funcs.Providers[name] = func(_ context.Context, a hxasset.Asset) (string, error) {
				if !ok {
					return "", fmt.Errorf("provider %q is not bound", name)
				}
				return strings.ReplaceAll(value, "{handle}", a.Handle()), nil
			}
		}
	}
	return funcs, nil
}
