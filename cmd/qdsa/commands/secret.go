package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qdsa.mleku.dev"
)

// maxDerivedSize is the HKDF-SHA-256 output limit of 255 hash blocks.
const maxDerivedSize = 255 * 32

func secretCmd(a *app) *cobra.Command {
	var (
		sec, pub, info string
		derive         bool
		size           int
	)
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Compute a shared secret with a peer public key",
		Long: "Compute the Diffie-Hellman point shared with --pub. With --derive the\n" +
			"point is passed through HKDF-SHA-256 to produce --size bytes of key material.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if derive && (size < 1 || size > maxDerivedSize) {
				return fmt.Errorf("--size must be between 1 and %d", maxDerivedSize)
			}
			sb, err := a.decode("sec", sec, 32)
			if err != nil {
				return err
			}
			sk, err := qdsa.PrivateKeyParse(sb)
			qdsa.Zero(sb)
			if err != nil {
				return err
			}
			defer sk.Clear()
			pb, err := a.decode("pub", pub, 32)
			if err != nil {
				return err
			}
			pk, err := qdsa.PublicKeyParse(pb)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if derive {
				key := make([]byte, size)
				if err := qdsa.DeriveSharedKey(key, &pk, &sk, []byte(info)); err != nil {
					return err
				}
				defer qdsa.Zero(key)
				a.log.Debug("derived shared key", zap.Int("size", size), zap.String("info", info))
				return a.print(out, "", key)
			}

			shared, err := qdsa.GenerateSecret(&pk, &sk)
			if err != nil {
				return err
			}
			defer qdsa.Zero(shared[:])
			return a.print(out, "", shared[:])
		},
	}
	cmd.Flags().StringVar(&sec, "sec", "", "own secret key")
	cmd.Flags().StringVar(&pub, "pub", "", "peer public key")
	cmd.Flags().BoolVar(&derive, "derive", false, "derive a symmetric key with HKDF")
	cmd.Flags().StringVar(&info, "info", "qdsa", "HKDF context string")
	cmd.Flags().IntVar(&size, "size", 32, "derived key size in bytes")
	return cmd
}
