package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/shouni/scripic-kit/pkg/normalizer"
	"github.com/spf13/cobra"
)

const (
	formatText   = "text"
	formatBlocks = "blocks"
)

func newResearchCmd(a *app) *cobra.Command {
	var query, format string

	cmd := &cobra.Command{
		Use:   "research [query]",
		Short: "Web 検索で裏付けされたリサーチを実行します",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && len(args) == 1 {
				query = args[0]
			}
			if format != formatText && format != formatBlocks {
				return fmt.Errorf("未対応の出力形式です: %s", format)
			}
			st, err := a.buildStudio(cmd.Context())
			if err != nil {
				return err
			}
			res, err := st.RunResearch(cmd.Context(), domain.ResearchRequest{Query: query})
			if err != nil {
				return err
			}
			if format == formatBlocks {
				fmt.Fprintln(cmd.OutOrStdout(), normalizer.FormatFindings(res.Findings))
				return nil
			}
			renderResearch(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "調査するテーマ")
	cmd.Flags().StringVar(&format, "format", formatText, "出力形式 (text: 端末向け, blocks: \"---\" 区切りのブロック)")
	return cmd
}

// renderResearch は Finding と引用元を端末向けに出力します。
func renderResearch(w io.Writer, res *domain.ResearchResult) {
	for i, f := range res.Findings {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "■ %s\n", f.Title)
		for j, p := range f.Points {
			if f.IsBullet(j) {
				fmt.Fprintf(w, "  • %s\n", p)
			} else {
				fmt.Fprintf(w, "  %s\n", p)
			}
		}
		if f.SourceLine != f.Title || len(f.Points) > 0 {
			fmt.Fprintf(w, "  (%s)\n", f.SourceLine)
		}
	}

	if len(res.Sources) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", 40))
	for i, src := range res.Sources {
		fmt.Fprintf(w, "[%d] %s %s\n", i+1, src.Title, src.URI)
	}
}
