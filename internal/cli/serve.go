package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/buildinfo"
	"github.com/matzehuels/stenoboard/pkg/cache"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve displays over HTTP",
		Long: `Serve displays over HTTP.

Create a display with POST /displays, send it engine events and fetch the
current frame from /displays/{id}/frame.svg (or .png, .json), or follow
it over the websocket at /displays/{id}/live. Displays share the
configured preferred layout store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			store, err := c.openPrefs(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			frames, err := c.frameCache(noCache)
			if err != nil {
				return err
			}
			defer frames.Close()

			srv := server.New(
				server.WithLogger(logger),
				server.WithPrefs(store),
				server.WithViewport(geom.Size{W: float64(c.cfg.Viewport.Width), H: float64(c.cfg.Viewport.Height)}),
				server.WithFrameCache(frames, c.cfg.Server.CacheTTL.Duration),
				// Frames cached by another build may render differently.
				server.WithKeyer(cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")),
			)

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printDetail("prefs: %s", c.cfg.Prefs.Backend)
			return srv.ListenAndServe(ctx, addr, c.cfg.Server.ReadTimeout.Duration)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the PNG frame cache")
	return cmd
}
