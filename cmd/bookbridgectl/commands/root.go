package commands

import (
	"fmt"
	"os"

	"github.com/diillson/bookbridge/pkg/config"
	"github.com/diillson/bookbridge/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand monta a árvore de comandos do bookbridgectl
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "bookbridgectl",
		Short: "Ferramentas de operação do BookBridge",
		Long: `bookbridgectl reúne as tarefas de operação do BookBridge:
migrações de banco, emissão de tokens para suporte e geração de configuração.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "./config", "Diretório do config.yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log detalhado")

	root.AddCommand(
		newMigrateCommand(opts),
		newTokenCommand(opts),
		newUsuarioCommand(opts),
		newConfigCommand(),
	)
	return root
}

// Execute executa o comando raiz
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load lê a configuração e cria um logger de console para a CLI
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	logCfg := config.LoggingConfig{Level: "warn", Format: "console", OutputPath: "stderr", ErrorPath: "stderr"}
	if o.verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
