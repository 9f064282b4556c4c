package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/server"
	"github.com/f3rmion/emojify/internal/translate"
	"github.com/f3rmion/emojify/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the translator over HTTP",
	Long: `Serve a JSON HTTP API:

  POST /api/translate   {"text": "...", "direction": "emoji"|"text", "policy": "..."}
  GET  /api/segment?text=...
  GET  /api/lookup?q=...
  GET  /healthz
  GET  /metrics         Prometheus metrics

With --watch the dictionary file is reloaded when it changes; requests in
flight finish with the dictionary they started with.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().Bool("watch", false, "reload the dictionary file when it changes")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.watch", serveCmd.Flags().Lookup("watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	d, path, tr, err := loadTranslator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := translate.NewSession(tr)
	srv := server.New(session, d, logger)

	if viper.GetBool("server.watch") {
		if path == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch ignored for the built-in dictionary")
		} else {
			w := watch.New(path, session, logger)
			w.OnReload = func(_ string, d *dictionary.Dictionary, err error) {
				if err == nil {
					srv.SetDictionary(d)
				}
			}
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("dictionary watcher stopped", "error", err)
				}
			}()
		}
	}

	addr := viper.GetString("server.addr")
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d entries on http://%s\n", d.Len(), addr)
	return srv.ListenAndServe(ctx, addr)
}
