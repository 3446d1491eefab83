package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qdsa.mleku.dev"
	"qdsa.mleku.dev/internal/encoding"
)

func keygenCmd(a *app) *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		Long: "Generate a key pair. With --seed the secret key is derived from the\n" +
			"given bytes; otherwise 64 bytes of system entropy are used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var kp *qdsa.KeyPair
			if seed != "" {
				b, err := encoding.Decode(a.cfg.Encoding, seed)
				if err != nil {
					return err
				}
				if len(b) < 32 {
					a.log.Warn("short seed", zap.Int("bytes", len(b)))
				}
				kp = qdsa.KeyPairCreate(b)
				qdsa.Zero(b)
			} else {
				var err error
				if kp, err = qdsa.KeyPairGenerate(); err != nil {
					return err
				}
			}
			defer kp.Clear()

			sec := kp.Seckey()
			defer qdsa.Zero(sec)
			pub := kp.Pubkey()
			a.log.Info("generated key pair", zap.Bool("seeded", seed != ""))

			out := cmd.OutOrStdout()
			if err := a.print(out, "secret", sec); err != nil {
				return err
			}
			return a.print(out, "public", pub[:])
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "seed bytes in the configured encoding")
	return cmd
}
