package cmd

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/echomindr/echomindr/internal/mcp"
	"github.com/echomindr/echomindr/internal/search"
	"github.com/echomindr/echomindr/internal/store"
)

func mcpCmd() *cobra.Command {
	var (
		transport string
		addr      string
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog as MCP agent tools",
		Long: "Exposes search_experience, get_experience_detail and find_similar_experiences " +
			"over the Model Context Protocol. The default stdio transport suits desktop " +
			"agents; sse and httpstream serve network clients.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if err := runMCP(cfg.DBPath, transport, addr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "transport: stdio, sse, or httpstream")
	cmd.Flags().StringVar(&addr, "addr", ":3001", "listen address for sse and httpstream transports")
	return cmd
}

func runMCP(dbPath, transport, addr string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w (run `echomindr ingest` first)", dbPath, err)
	}
	defer st.Close()

	s := mcp.NewServer(search.New(st), Version)

	switch transport {
	case "stdio":
		slog.Info("mcp server on stdio")
		return mcpserver.ServeStdio(s)
	case "sse":
		slog.Info("mcp server on sse", "addr", addr)
		return mcpserver.NewSSEServer(s).Start(addr)
	case "httpstream":
		slog.Info("mcp server on streamable http", "addr", addr)
		return mcpserver.NewStreamableHTTPServer(s).Start(addr)
	default:
		return fmt.Errorf("unknown transport %q (use stdio, sse, or httpstream)", transport)
	}
}
