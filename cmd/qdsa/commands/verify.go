package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qdsa.mleku.dev"
)

func verifyCmd(a *app) *cobra.Command {
	var pub, sig, msg, in string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := a.decode("pub", pub, 32)
			if err != nil {
				return err
			}
			pk, err := qdsa.PublicKeyParse(pb)
			if err != nil {
				return err
			}
			sb, err := a.decode("sig", sig, 64)
			if err != nil {
				return err
			}
			s, err := qdsa.SignatureParse(sb)
			if err != nil {
				return err
			}
			m, err := readMessage(cmd, msg, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !qdsa.Verify(&pk, &s, m) {
				a.log.Info("signature rejected", zap.Int("bytes", len(m)))
				fmt.Fprintln(out, "invalid")
				return errInvalidSignature
			}
			fmt.Fprintln(out, "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&pub, "pub", "", "public key")
	cmd.Flags().StringVar(&sig, "sig", "", "signature")
	cmd.Flags().StringVar(&msg, "msg", "", "message text")
	cmd.Flags().StringVar(&in, "in", "", "message file, - for stdin")
	return cmd
}
