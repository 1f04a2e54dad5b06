package cmd

import (
	"context"
	"os"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	internalApp "github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dao"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/mcpserver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newMCPLogger builds a stderr-only logger
// stdout 由 MCP stdio 协议占用，日志只能走 stderr
func newMCPLogger(cfg *internalApp.AppConfig) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.WarnLevel
	if cfg.Log.Level != "" {
		_ = level.UnmarshalText([]byte(cfg.Log.Level))
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp [-c config_file]",
	Short: "Serve the note graph to MCP clients over stdio",
	Long: `Serve the note graph to MCP clients over stdio.

Exposes list_notes, get_note, search_notes, get_backlinks,
get_unlinked_mentions and suggest_links as MCP tools. Point an MCP
client (Claude Desktop, an editor plugin) at this command to let a
model read and reason over the knowledge graph.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, _, err := internalApp.LoadConfig(configPath)
		if err != nil {
			bootstrapLogger.Error("failed to load config", zap.Error(err))
			os.Exit(1)
		}

		lg := newMCPLogger(appConfig)
		global.Logger = lg

		dbConfig := appConfig.GetDatabaseConfig()
		db, err := dao.NewDBEngine(&dbConfig)
		if err != nil {
			lg.Error("failed to init database", zap.Error(err))
			os.Exit(1)
		}

		appContainer, err := internalApp.NewApp(appConfig, lg, db)
		if err != nil {
			lg.Error("failed to create app container", zap.Error(err))
			os.Exit(1)
		}

		s := mcpserver.New(appContainer)

		// ServeStdio returns when the client closes stdin
		// 客户端关闭 stdin 时 ServeStdio 返回
		serveErr := mcpserver.ServeStdio(s)

		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := appContainer.Shutdown(ctx); err != nil {
			lg.Error("failed to shutdown app container", zap.Error(err))
		}

		if serveErr != nil {
			lg.Error("mcp server exit", zap.Error(serveErr))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("config", "c", "", "config file path")
}
