package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/osmtags/internal/debug"
	"github.com/standardbeagle/osmtags/internal/mcp"
)

const shutdownGrace = 2 * time.Second

func (st *appState) mcpCommand(c *cli.Context) error {
	// stdout belongs to the protocol from here on
	debug.SetMCPMode(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mcpServer, err := mcp.NewServer(ctx, st.cfg)
	if err != nil {
		return debug.Fatal("failed to create MCP server: %v\n", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer shutdownCancel()
		_ = mcpServer.Shutdown(shutdownCtx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- mcpServer.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return debug.Fatal("MCP server error: %v\n", err)
		}
		return nil
	case sig := <-sigChan:
		debug.Log("MCP", "received signal %v, shutting down\n", sig)
		cancel()

		shutdownTimer := time.NewTimer(shutdownGrace)
		defer shutdownTimer.Stop()

		select {
		case <-errChan:
			return nil
		case <-shutdownTimer.C:
			// Closing stdin breaks a transport blocked on read
			_ = os.Stdin.Close()
			return nil
		}
	}
}
