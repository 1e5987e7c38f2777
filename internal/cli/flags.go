package cli

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		// Lookup only fails for unregistered flags, which is a programming error.
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			panic(err)
		}
	}
}
