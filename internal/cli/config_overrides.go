package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// applyConfigFlagOverrides copies explicitly set flags onto their config
// keys so flags win over file and environment values.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, flags map[string]string) {
	for flagName, key := range flags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		switch flag.Value.Type() {
		case "bool":
			if val, err := cmd.Flags().GetBool(flagName); err == nil {
				v.Set(key, val)
			}
		case "int":
			if val, err := cmd.Flags().GetInt(flagName); err == nil {
				v.Set(key, val)
			}
		default:
			v.Set(key, flag.Value.String())
		}
	}
}
