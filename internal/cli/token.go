package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-conflict-checker/internal/models"
	"github.com/noah-isme/course-conflict-checker/internal/service"
	"github.com/noah-isme/course-conflict-checker/pkg/config"
)

var (
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed access token for local development",
	Long: `Mint an HS256 access token signed with JWT_SECRET. Refused when ENV is
production.`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenUser, "user", "dev", "Subject user ID")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(models.RoleScheduler), "Role claim (SUPERADMIN, ADMIN, SCHEDULER, VIEWER)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Env == config.EnvProduction {
		return fmt.Errorf("refusing to mint tokens in %s", cfg.Env)
	}

	role := models.UserRole(strings.ToUpper(strings.TrimSpace(tokenRole)))
	switch role {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleScheduler, models.RoleViewer:
	default:
		return fmt.Errorf("unknown role %q", tokenRole)
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	token, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer).Issue(tokenUser, role, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
