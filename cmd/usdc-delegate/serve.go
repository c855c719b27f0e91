package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/usdc-delegate/internal/api"
	"github.com/AlexZinkM/usdc-delegate/internal/config"
	"github.com/AlexZinkM/usdc-delegate/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the approve/revoke page and JSON API",
	Long: `Start the HTTP server on PORT.

The page is served at / and the API documentation at /swagger/.
When SOLANA_FILE_PATH is set the keystore password is asked once at startup.`,
	Example: `  usdc-delegate serve
  PORT=9090 usdc-delegate serve --network devnet`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if config.GetSolanaFilePath() != "" {
		if err := config.PromptForPassword(); err != nil {
			return err
		}
	}

	controller, err := newController()
	if err != nil {
		return err
	}

	router, err := api.SetupRouter(api.Options{
		Controller:   controller,
		KeystorePath: config.GetSolanaFilePath(),
		Password:     config.GetSolanaPasswordBytes,
	})
	if err != nil {
		return err
	}

	addr := ":" + config.GetPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Println(titleStyle.Render("USDC Approve / Revoke"))
	fmt.Println(keyValue("Page", "http://localhost"+addr+"/"))
	fmt.Println(keyValue("API docs", "http://localhost"+addr+"/swagger/"))
	for _, w := range controller.Wallets() {
		fmt.Println(keyValue("Wallet", w.Icon+" "+w.Name))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logging.Info("Server listening", zap.String("addr", addr))
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		if err := controller.Disconnect(ctx); err != nil {
			logging.Warn("Disconnect on shutdown failed", zap.Error(err))
		}
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
