package commands

import (
	"fmt"
	"os"
	"regexp"

	"github.com/diillson/bookbridge/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const placeholderSecret = "troque-este-segredo-por-um-valor-aleatorio-de-32-bytes"

func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Utilitários de configuração",
	}
	cfgCmd.AddCommand(newConfigGenerateCommand())
	return cfgCmd
}

func newConfigGenerateCommand() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Gera um config.yaml com os valores padrão",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(outputPath); err == nil && !force {
				return fmt.Errorf("arquivo %s já existe, use --force para sobrescrever", outputPath)
			}

			data, err := renderDefaultConfig()
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, data, 0o600); err != nil {
				return fmt.Errorf("erro ao escrever arquivo: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Arquivo de configuração gerado em: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "config.yaml", "Caminho do arquivo de saída")
	cmd.Flags().BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	return cmd
}

var (
	skipMigrationsLine = regexp.MustCompile(`(\s+skipMigrations:\s+false)`)
	jwtSecretLine      = regexp.MustCompile(`(\s+jwtSecret:\s+\S+)`)
)

// renderDefaultConfig serializa config.Default() com um segredo de exemplo
func renderDefaultConfig() ([]byte, error) {
	cfg := config.Default()
	cfg.Auth.JWTSecret = placeholderSecret

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar configuração: %w", err)
	}

	out := skipMigrationsLine.ReplaceAll(data, []byte(`$1  # true pula as migrações na inicialização`))
	out = jwtSecretLine.ReplaceAll(out, []byte(`$1  # mínimo de 32 bytes; BB_AUTH_JWTSECRET sobrescreve`))
	return out, nil
}
