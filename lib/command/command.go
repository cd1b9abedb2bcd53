package command

import (
	stderrors "errors"
	goflag "flag"
	"fmt"
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/version"
	"github.com/kadaan/tracerr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"io"
	"k8s.io/klog/v2"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

var (
	osExit    = os.Exit
	klogFlags sync.Once
)

type RootCommand interface {
	Execute()
	addCommand(cmd *cobra.Command)
}

func NewRootCommand(short string, long string) RootCommand {
	log.SetFlags(0)
	r := &rootCommand{v: viper.New()}
	r.cmd = &cobra.Command{
		Use:   version.Name,
		Short: short,
		Long:  long,
	}
	r.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if r.configErr != nil {
			return r.configErr
		}
		klogFlags.Do(func() {
			klog.InitFlags(nil)
		})
		return goflag.CommandLine.Parse([]string{
			"--skip_headers=true",
			fmt.Sprintf("-v=%d", r.verbosity),
		})
	}
	r.addVersionCommand(r.cmd)
	r.addCompletionCommand(r.cmd)
	cobra.OnInitialize(r.initConfig)
	r.cmd.PersistentFlags().CountVarP(&r.verbosity, "verbose", "v", "enables verbose logging (multiple times increases verbosity)")
	r.cmd.PersistentFlags().StringVar(&r.cfgFile, "config", "", "config file (default is ."+version.Name+".config)")
	return r
}

type rootCommand struct {
	verbosity int
	cfgFile   string
	configErr error
	v         *viper.Viper
	cmd       *cobra.Command
}

func (r *rootCommand) addCommand(cmd *cobra.Command) {
	r.cmd.AddCommand(cmd)
}

func (r *rootCommand) addVersionCommand(cmd *cobra.Command) {
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Prints the " + version.Name + " version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Print())
		},
	})
}

var completionShells = map[string]func(cmd *cobra.Command, w io.Writer) error{
	"bash": func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenBashCompletionV2(w, true)
	},
	"zsh": func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenZshCompletion(w)
	},
	"fish": func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenFishCompletion(w, true)
	},
	"powershell": func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenPowerShellCompletionWithDesc(w)
	},
}

func (r *rootCommand) addCompletionCommand(cmd *cobra.Command) {
	shells := make([]string, 0, len(completionShells))
	for shell := range completionShells {
		shells = append(shells, shell)
	}
	sort.Strings(shells)
	cmd.AddCommand(&cobra.Command{
		Use:                   "completion SHELL",
		DisableFlagsInUseLine: true,
		Short:                 "Output shell completion code for " + strings.Join(shells, ", "),
		Long: `Output shell completion code for the specified shell.
The output must be evaluated to provide interactive completion of ` + version.Name + `
commands and flags, for example by sourcing it from the shell profile.`,
		Example: `	source <(` + version.Name + ` completion bash)
	` + version.Name + ` completion zsh > "${fpath[1]}/_` + version.Name + `"
	` + version.Name + ` completion fish > ~/.config/fish/completions/` + version.Name + `.fish`,
		ValidArgs: shells,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(c *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd, c.OutOrStdout())
		},
	})
}

// initConfig loads the config file and the environment into viper and
// presets every flag they set. Errors are reported once a command runs.
func (r *rootCommand) initConfig() {
	r.configErr = nil
	if r.cfgFile != "" {
		r.v.SetConfigFile(r.cfgFile)
	} else {
		workingDir, err := os.Getwd()
		if err != nil {
			r.configErr = errors.NewConfigError("failed to determine working directory: %v", err)
			return
		}
		r.v.AddConfigPath(workingDir)
		r.v.SetConfigName("." + version.Name)
	}

	r.v.SetEnvPrefix(version.Name)
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()
	if err := r.v.ReadInConfig(); err == nil {
		klog.V(0).Infoln("Using config file:", r.v.ConfigFileUsed())
	} else if !isConfigFileNotFound(err) || r.cfgFile != "" {
		r.configErr = errors.NewConfigError("failed to read config file: %v", err)
		return
	}

	r.postInitCommands(r.cmd.Commands())
}

func isConfigFileNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

func (r *rootCommand) postInitCommands(commands []*cobra.Command) {
	for _, c := range commands {
		r.presetRequiredFlags(c)
		if c.HasSubCommands() {
			r.postInitCommands(c.Commands())
		}
	}
}

func (r *rootCommand) presetRequiredFlags(cmd *cobra.Command) {
	_ = r.v.BindPFlags(cmd.Flags())
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if r.v.IsSet(f.Name) && r.v.GetString(f.Name) != "" {
			_ = cmd.Flags().Set(f.Name, r.v.GetString(f.Name))
		}
	})
}

// Execute runs the selected command. Configuration errors exit with status 2,
// every other failure with status 1.
func (r *rootCommand) Execute() {
	err := r.cmd.Execute()
	klog.Flush()
	if err != nil {
		tracerr.PrintSourceColor(err)
		osExit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.IsConfigError(err) {
		return 2
	}
	return 1
}

type Command[C any] interface {
	Configure(func(fb config.FlagBuilder, cfg *C))
}

type command[C any] struct {
	cfg *C
	fb  config.FlagBuilder
}

func (c *command[C]) Configure(f func(fb config.FlagBuilder, cfg *C)) {
	f(c.fb, c.cfg)
}

// NewCommand registers a sub command of root that runs task with cfg once
// the flags are parsed and validated.
func NewCommand[C any](root RootCommand, use string, short string, long string, cfg *C, task Task[C]) Command[C] {
	c := &cobra.Command{
		Use:          use,
		Short:        short,
		Long:         long,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := task.Run(cfg); err != nil {
				return errors.Wrap(err, "%s failed", use)
			}
			return nil
		},
	}
	root.addCommand(c)
	return &command[C]{
		cfg: cfg,
		fb:  config.NewFlagBuilder(c),
	}
}

type Task[C any] interface {
	Run(cfg *C) error
}
