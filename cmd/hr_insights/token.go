package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-insights/internal/config"
	"github.com/jonathan/hr-insights/internal/server"
	"github.com/jonathan/hr-insights/internal/types"
)

var tokenUser types.UserContext

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed access token for a user",
	Long:  "Issue a JWT signed with JWT_SECRET that the API accepts as a Bearer token, or as ?token= on /ws and /events.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return err
		}
		return runToken(cmd.OutOrStdout(), jwtCfg, tokenUser)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser.UserID, "user-id", "", "User id carried in the token (required)")
	tokenCmd.Flags().StringVar(&tokenUser.Name, "name", "", "Display name")
	tokenCmd.Flags().StringVar(&tokenUser.Role, "role", "employee", "Role: employee, manager, hr or admin")
	tokenCmd.Flags().StringVar(&tokenUser.Department, "department", "", "Department")
	_ = tokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(out io.Writer, jwtCfg *config.JWTConfig, user types.UserContext) error {
	token, err := server.NewJWTService(jwtCfg).GenerateToken(user)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
