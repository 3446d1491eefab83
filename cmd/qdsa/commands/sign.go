package commands

import (
	"bytes"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qdsa.mleku.dev"
)

func signCmd(a *app) *cobra.Command {
	var sec, pub, msg, in string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.decode("sec", sec, 32)
			if err != nil {
				return err
			}
			kp, err := qdsa.KeyPairFromSecret(b)
			qdsa.Zero(b)
			if err != nil {
				return err
			}
			defer kp.Clear()

			if pub != "" {
				want, err := a.decode("pub", pub, 32)
				if err != nil {
					return err
				}
				got := kp.Pubkey()
				if !bytes.Equal(want, got[:]) {
					return errors.New("--pub does not match the secret key")
				}
			}

			m, err := readMessage(cmd, msg, in)
			if err != nil {
				return err
			}
			sig := kp.Sign(m)
			a.log.Debug("signed message", zap.Int("bytes", len(m)))
			return a.print(cmd.OutOrStdout(), "", sig[:])
		},
	}
	cmd.Flags().StringVar(&sec, "sec", "", "secret key")
	cmd.Flags().StringVar(&pub, "pub", "", "public key to check against the secret key")
	cmd.Flags().StringVar(&msg, "msg", "", "message text")
	cmd.Flags().StringVar(&in, "in", "", "message file, - for stdin")
	return cmd
}
