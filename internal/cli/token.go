package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/service"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

type tokenOptions struct {
	email    string
	password string
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an existing user",
		Long: `Verify a user's credentials and print an access token signed with
the data directory's key. The token is accepted by a server sharing the
same data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runToken(cmd *cobra.Command, rootOpts *RootOptions, opts *tokenOptions) error {
	env, err := openEnvironment(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	users := service.NewUserService(env.store, validation.New(), env.logger)
	user, err := users.Authenticate(cmd.Context(), opts.email, opts.password)
	if err != nil {
		return err
	}

	key, err := auth.LoadOrGenerateKey(env.cfg.Storage.DataPath)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(key, env.cfg.Auth.AccessTokenDuration)
	if err != nil {
		return err
	}
	token, err := tokens.GenerateAccessToken(user)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(map[string]any{
		"auth_token": token,
		"expires_in": int(tokens.Lifetime().Seconds()),
		"user_id":    user.ID,
	}, token)
}
