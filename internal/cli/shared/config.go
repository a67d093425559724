package shared

import (
	"github.com/spf13/cobra"

	"github.com/kacl-dev/kacl/internal/config"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

// LoadConfig loads the configuration, honoring the --config flag when the
// command inherits it.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString(ConfigFlagName)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	return cfg, nil
}
