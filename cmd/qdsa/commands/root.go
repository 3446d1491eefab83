package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qdsa.mleku.dev/internal/config"
	"qdsa.mleku.dev/internal/encoding"
)

// errInvalidSignature makes verify exit with a failure status.
var errInvalidSignature = errors.New("invalid signature")

// app is the state shared by subcommands once the root has run.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

// Execute runs the qdsa root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	var (
		cfgPath  string
		enc      string
		logLevel string
	)

	root := &cobra.Command{
		Use:           "qdsa",
		Short:         "qDSA signatures and key exchange on the Gaudry-Schost Kummer surface",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if root.PersistentFlags().Changed("encoding") {
			cfg.Encoding = enc
		}
		if root.PersistentFlags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.log = log
		log.Debug("configuration loaded",
			zap.String("config", cfgPath),
			zap.String("encoding", cfg.Encoding),
			zap.String("level", cfg.LogLevel))
		return nil
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = a.log.Sync()
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVarP(&enc, "encoding", "e", encoding.Hex, "key and signature encoding (hex, base58, base64)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(keygenCmd(a), pubkeyCmd(a), signCmd(a), verifyCmd(a), secretCmd(a), infoCmd(a))
	return root
}

// newLogger builds a stderr logger for cfg.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	format := cfg.LogFormat
	if format == config.FormatAuto {
		format = config.FormatJSON
		if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			format = config.FormatConsole
		}
	}

	var zc zap.Config
	if format == config.FormatJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// decode parses a flag value of n bytes in the configured encoding.
func (a *app) decode(flag, s string, n int) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("--%s is required", flag)
	}
	b, err := encoding.DecodeSize(a.cfg.Encoding, s, n)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return b, nil
}

// print writes b to w in the configured encoding, prefixed by label when
// label is not empty.
func (a *app) print(w io.Writer, label string, b []byte) error {
	s, err := encoding.Encode(a.cfg.Encoding, b)
	if err != nil {
		return err
	}
	if label != "" {
		_, err = fmt.Fprintf(w, "%s: %s\n", label, s)
	} else {
		_, err = fmt.Fprintln(w, s)
	}
	return err
}

// readMessage returns the message given by exactly one of --msg and --in.
// An --in of "-" reads standard input.
func readMessage(cmd *cobra.Command, msg, in string) ([]byte, error) {
	hasMsg := cmd.Flags().Changed("msg")
	switch {
	case hasMsg && in != "":
		return nil, errors.New("use only one of --msg and --in")
	case hasMsg:
		return []byte(msg), nil
	case in == "-":
		return io.ReadAll(cmd.InOrStdin())
	case in != "":
		return os.ReadFile(in)
	}
	return nil, errors.New("one of --msg or --in is required")
}
