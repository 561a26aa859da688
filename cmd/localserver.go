/*
Copyright © 2025 StuLang Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/infrastructure/config"
	"github.com/stulang/stulang/internal/infrastructure/logging"
	"github.com/stulang/stulang/internal/localserver"
)

// localserverCmd represents the localserver command
var localserverCmd = &cobra.Command{
	Use:   "localserver",
	Short: "Run a self-contained StuLang server for offline development",
	Long: `Run a local implementation of the StuLang HTTP API backed by an
embedded database. It seeds a starter vocabulary and one account so the
client commands work without the hosted service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := logging.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.LocalServer.Addr = addr
		}

		db, err := localserver.OpenDatabase(cfg.LocalServer, logger)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		srv := localserver.NewServer(db, cfg.LocalServer, logger)
		httpSrv := &http.Server{
			Addr:              cfg.LocalServer.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.WithField("addr", cfg.LocalServer.Addr).Info("local server listening")
			errCh <- httpSrv.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(ctx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(localserverCmd)

	localserverCmd.Flags().String("addr", "", "listen address (overrides configuration)")
}
