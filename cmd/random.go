package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	clibase "github.com/shouni/go-cli-base"
	textUtils "github.com/shouni/go-utils/text"
	"github.com/spf13/cobra"

	"github.com/shouni/go-koan-exact/internal/pipeline"
	"github.com/shouni/go-koan-exact/pkg/koan"
	"github.com/shouni/go-koan-exact/pkg/present"
	"github.com/shouni/go-koan-exact/pkg/types"
)

const previewLength = 80

var caseURL string

// runRandom は、取得・抽出・出力を順に実行します。
func runRandom(ctx context.Context, out io.Writer, fetcher koan.Fetcher, rawURL string, overallTimeout time.Duration) error {
	processedURL, err := ensureScheme(rawURL)
	if err != nil {
		return fmt.Errorf("URLスキームの処理エラー: %w", err)
	}
	if clibase.Flags.Verbose {
		log.Printf("処理対象URL: %s", processedURL)
	}

	c, err := pipeline.FetchCase(ctx, fetcher, processedURL, overallTimeout)
	if err != nil {
		return err
	}

	if clibase.Flags.Verbose {
		logCase(c)
	}

	return present.Write(out, c)
}

// logCase は抽出結果の概要をログに出力します。
func logCase(c *types.Case) {
	if c == nil {
		log.Println("タイトルが見つからなかったため、公案はありません。")
		return
	}
	log.Printf("タイトル: %q", c.Title)
	if c.HasText() {
		preview := textUtils.NormalizeText(*c.Text)
		if r := []rune(preview); len(r) > previewLength {
			preview = string(r[:previewLength]) + "..."
		}
		log.Printf("本文 (%d 文字): %s", len([]rune(*c.Text)), preview)
	}
}

// runRandomE は、ルートコマンドと random サブコマンドで共有する RunE です。
func runRandomE(cmd *cobra.Command, args []string) error {
	fetcher := GetGlobalFetcher()
	if fetcher == nil {
		return fmt.Errorf("HTTPクライアントの取得に失敗しました")
	}

	// 全体のタイムアウトはクライアントタイムアウトと同じ値とし、0 の場合は設定しない
	overallTimeout := time.Duration(Flags.TimeoutSec) * time.Second

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return runRandom(ctx, cmd.OutOrStdout(), fetcher, caseURL, overallTimeout)
}

func newRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "random",
		Short:        "ランダムな公案を1件取得し、タイトルと本文を表示します (引数なしの実行と同じ)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runRandomE,
	}
}
