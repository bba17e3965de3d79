package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseflow/caseflow/pkg/vocab"
)

func runVocabs(cmd *cobra.Command, args []string) error {
	for _, name := range vocab.Builtins() {
		v, ok := vocab.Builtin(name)
		if !ok {
			continue
		}
		fmt.Printf("%-12s %d event labels, %d case starts, default %q\n",
			name, len(v.EventLabels), len(v.CaseStartLabels), v.DefaultLabel)
	}
	return nil
}
