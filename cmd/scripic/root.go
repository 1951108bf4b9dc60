package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "scripic",
		Short:         "Gemini を使った画像生成・テキスト編集・Web リサーチ",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "設定ファイル (YAML)")

	root.AddCommand(
		newImageCmd(a),
		newEditCmd(a),
		newResearchCmd(a),
		newServeCmd(a),
	)
	return root
}
