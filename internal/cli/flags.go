package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitConfig wires viper to the environment so every flag can also be
// set via an environment variable of the same name in SCREAMING_CASE
func InitConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Flags defines a collection of flags as a slice
type Flags []FlagData

// AddToCommand registers every flag in the slice on `command`; pass
// true to register them as persistent flags
func (f Flags) AddToCommand(command *cobra.Command, persistent ...bool) {
	for _, flag := range f {
		flag.AddToCommand(command, persistent...)
	}
}

// BindViper binds every flag in the slice to viper
func (f Flags) BindViper(command *cobra.Command, persistent ...bool) {
	for _, flag := range f {
		flag.BindViper(command, persistent...)
	}
}

// FlagData represents a logical flag; the `.Name` property doubles as
// the viper key and should be in kebab-case
type FlagData struct {
	Name         string
	Short        rune
	DefaultValue any
	Usage        string
	Type         FlagType
}

// FlagType restricts flags to the types this package knows how to
// register
type FlagType string

func getFlagSet(command *cobra.Command, persistent ...bool) *pflag.FlagSet {
	if len(persistent) > 0 && persistent[0] {
		return command.PersistentFlags()
	}
	return command.Flags()
}

// AddToCommand adds the flag to the provided `command` instance, this
// should be done during the `init()` method. Panics if the `.Type`
// property is not something we recognise
func (f *FlagData) AddToCommand(command *cobra.Command, persistent ...bool) {
	flags := getFlagSet(command, persistent...)
	shorthand := ""
	if f.Short != 0 {
		shorthand = string(f.Short)
	}
	switch f.Type {
	case FlagTypeBool:
		flags.BoolP(f.Name, shorthand, f.DefaultValue.(bool), f.Usage)
	case FlagTypeDuration:
		flags.DurationP(f.Name, shorthand, f.DefaultValue.(time.Duration), f.Usage)
	case FlagTypeFloat:
		flags.Float64P(f.Name, shorthand, f.DefaultValue.(float64), f.Usage)
	case FlagTypeInteger:
		flags.IntP(f.Name, shorthand, f.DefaultValue.(int), f.Usage)
	case FlagTypeString:
		flags.StringP(f.Name, shorthand, f.DefaultValue.(string), f.Usage)
	case FlagTypeStringSlice:
		flags.StringSliceP(f.Name, shorthand, f.DefaultValue.([]string), f.Usage)
	default:
		panic(fmt.Sprintf("unknown FlagType[%s]", f.Type))
	}
}

// BindViper binds the flag to viper under its `.Name`. This should be
// done during the `cobra.Command.PreRun` phase to avoid overwriting
// variables defined in other commands
func (f *FlagData) BindViper(command *cobra.Command, persistent ...bool) {
	flags := getFlagSet(command, persistent...)
	viper.BindPFlag(f.Name, flags.Lookup(f.Name))
	viper.BindEnv(f.Name)
}
