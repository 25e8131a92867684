package commands

import (
	"errors"
	"fmt"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/diillson/bookbridge/pkg/security"
	"github.com/spf13/cobra"
)

func newTokenCommand(opts *rootOptions) *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite um token de acesso para um usuário existente",
		Long: `Emite um token assinado com o segredo configurado, para uso em suporte.
O usuário precisa existir no banco.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return errors.New("--user-id é obrigatório")
			}

			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration, logger)
			if err != nil {
				return err
			}

			dbCfg := cfg.Database
			dbCfg.SkipMigrations = true
			db, err := database.NewDatabase(cmd.Context(), dbCfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			usuario, err := database.NewUsuarioRepository(db.DB(), logger).GetByID(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("usuário %d: %w", userID, err)
			}

			token, err := keyManager.GenerateToken(usuario.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().UintVar(&userID, "user-id", 0, "ID do usuário")
	return cmd
}
