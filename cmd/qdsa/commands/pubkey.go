package commands

import (
	"github.com/spf13/cobra"

	"qdsa.mleku.dev"
)

func pubkeyCmd(a *app) *cobra.Command {
	var sec string
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key of a secret key",
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
			pub := kp.Pubkey()
			return a.print(cmd.OutOrStdout(), "", pub[:])
		},
	}
	cmd.Flags().StringVar(&sec, "sec", "", "secret key")
	return cmd
}
