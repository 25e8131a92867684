package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Gerencia as migrações do banco de dados",
		Long: `Subcomandos:
  up      - cria as tabelas e aplica os arquivos SQL pendentes
  status  - mostra o estado de cada arquivo SQL
  create  - cria um arquivo de migração vazio`,
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica as migrações pendentes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := opts.load()
				if err != nil {
					return err
				}
				defer logger.Sync()

				dbCfg := cfg.Database
				dbCfg.SkipMigrations = false
				db, err := database.NewDatabase(cmd.Context(), dbCfg, logger)
				if err != nil {
					return err
				}
				defer db.Close()

				fmt.Fprintln(cmd.OutOrStdout(), "Migrações aplicadas com sucesso")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Mostra o estado das migrações SQL",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := opts.load()
				if err != nil {
					return err
				}
				defer logger.Sync()

				dbCfg := cfg.Database
				dbCfg.SkipMigrations = true
				db, err := database.NewDatabase(cmd.Context(), dbCfg, logger)
				if err != nil {
					return err
				}
				defer db.Close()

				status, err := db.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VERSÃO\tNOME\tESTADO")
				for _, st := range status {
					state := "pendente"
					if st.Applied {
						state = "aplicada em " + st.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", st.Version, st.Name, state)
				}
				return w.Flush()
			},
		},
		newMigrateCreateCommand(),
	)
	return migrate
}

func newMigrateCreateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create <nome>",
		Short: "Cria um arquivo de migração YYYYMMDDHHMMSS_<nome>.sql",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := database.NewMigrationManager(nil, zap.NewNop(), dir)
			path, err := manager.CreateMigration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migração criada: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./migrations", "Diretório de migrações")
	return cmd
}
