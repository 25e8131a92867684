package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/diillson/bookbridge/internal/app/usuario"
	"github.com/spf13/cobra"
)

func newUsuarioCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuario",
		Short: "Cria e inspeciona usuários direto no banco",
	}
	cmd.AddCommand(newUsuarioCreateCommand(opts), newUsuarioShowCommand(opts))
	return cmd
}

func newUsuarioCreateCommand(opts *rootOptions) *cobra.Command {
	var in usuario.CreateInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Cadastra um usuário com as mesmas regras da API",
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

			service := usuario.NewService(database.NewUsuarioRepository(db.DB(), logger), nil, logger)
			created, err := service.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Usuário %d criado (%s)\n", created.ID, created.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Nome, "nome", "", "Nome do usuário")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email do usuário")
	cmd.Flags().StringVar(&in.Senha, "senha", "", "Senha do usuário")
	return cmd
}

func newUsuarioShowCommand(opts *rootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Diagnostica o cadastro de um usuário pelo email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("--email é obrigatório")
			}

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

			u, err := database.NewUsuarioRepository(db.DB(), logger).GetByEmail(cmd.Context(), strings.TrimSpace(email))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%d\n", u.ID)
			fmt.Fprintf(w, "Nome\t%s\n", u.Nome)
			fmt.Fprintf(w, "Email\t%s\n", u.Email)
			fmt.Fprintf(w, "Criado em\t%s\n", u.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "Hash bcrypt\t%t\n", strings.HasPrefix(u.SenhaHash, "$2"))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email do usuário")
	return cmd
}
