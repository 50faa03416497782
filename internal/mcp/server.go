package mcp

import (
	"context"
	"time"

	"drops-mcp/internal/config"
	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ServerName is announced to MCP clients during initialization.
const ServerName = "drops-mcp"

// Server exposes the drop statistics as MCP tools.
type Server struct {
	cfg    *config.AppConfig
	source dataset.Source
	items  *stats.ItemTable
	now    func() time.Time
}

// NewServer creates a new MCP server over a data source. items may be nil.
func NewServer(cfg *config.AppConfig, source dataset.Source, items *stats.ItemTable) *Server {
	return &Server{
		cfg:    cfg,
		source: source,
		items:  items,
		now:    time.Now,
	}
}

func (s *Server) newSDKServer(version string) *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{Name: ServerName, Version: version}, nil)
	s.registerTools(server)
	return server
}

// Start serves MCP over stdio until the client disconnects or ctx is done.
func (s *Server) Start(ctx context.Context, version string) error {
	log.Info().Str("version", version).Msg("MCP server listening on stdio")
	err := s.newSDKServer(version).Run(ctx, &sdk.StdioTransport{})
	if err != nil && ctx.Err() != nil {
		log.Info().Msg("MCP server stopped")
		return nil
	}
	return err
}

func (s *Server) concurrency() int {
	if s.cfg == nil {
		return dataset.DefaultConcurrency
	}
	return s.cfg.Dataset.Concurrency
}

func (s *Server) chartsEnabled() bool {
	return s.cfg != nil && s.cfg.EnableMermaidCharts
}
