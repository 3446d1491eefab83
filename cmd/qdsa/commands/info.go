package commands

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
)

// hashFeatures are the extensions sha256-simd dispatches on.
var hashFeatures = []struct {
	name string
	id   cpuid.FeatureID
}{
	{"sha-ni", cpuid.SHA},
	{"avx2", cpuid.AVX2},
	{"avx512f", cpuid.AVX512F},
	{"asimd", cpuid.ASIMD},
	{"sha2", cpuid.SHA2},
}

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the CPU features available to the hash backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cpu: %s\n", cpuid.CPU.BrandName)
			fmt.Fprintf(out, "logical cores: %d\n", cpuid.CPU.LogicalCores)
			for _, f := range hashFeatures {
				fmt.Fprintf(out, "%s: %t\n", f.name, cpuid.CPU.Supports(f.id))
			}
			fmt.Fprintf(out, "encoding: %s\n", a.cfg.Encoding)
			return nil
		},
	}
}
