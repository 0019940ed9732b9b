package cmd

import (
	"log"
	"os"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-koan-exact/pkg/httpclient"
	"github.com/shouni/go-koan-exact/pkg/koan"
)

// --- グローバル定数 ---

const (
	appName           = "koan-exact"
	defaultTimeoutSec = 0 // 0 はタイムアウトなし
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	TimeoutSec int // --timeout タイムアウト
}

var Flags AppFlags
var globalFetcher koan.Fetcher

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒）。0 の場合はタイムアウトなし",
	)
	rootCmd.PersistentFlags().StringVarP(
		&caseURL,
		"url",
		"u",
		httpclient.DefaultURL,
		"公案を取得するURL",
	)
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(Flags.TimeoutSec) * time.Second

	if clibase.Flags.Verbose {
		log.Printf("HTTPクライアントのタイムアウトを設定しました (Timeout: %s)。", timeout)
	}

	// 共有フェッチャーの初期化 (リトライなし)
	globalFetcher = httpclient.New(timeout)

	return nil
}

// GetGlobalFetcher は、初期化されたフェッチャーを返す関数 (DIの代わり)
func GetGlobalFetcher() koan.Fetcher {
	return globalFetcher
}

// --- エントリポイント ---

// newRootCmd は、引数なしで公案を1件取得するルートコマンドを生成します。
// random サブコマンドも同じ処理を実行します。
func newRootCmd() *cobra.Command {
	rootCmd := clibase.NewRootCmd(appName, addAppPersistentFlags, initAppPreRunE)
	rootCmd.Short = "ランダムな公案を1件取得し、タイトルと本文を表示します"
	rootCmd.Long = `公案ページを1回だけ取得し、<title> と class="koan" の要素からタイトルと本文を抽出して標準出力に表示します。`
	rootCmd.Args = cobra.NoArgs
	rootCmd.SilenceUsage = true
	rootCmd.Run = nil
	rootCmd.RunE = runRandomE

	rootCmd.AddCommand(newRandomCmd())
	return rootCmd
}

// Execute は、ルートコマンドを実行します。エラー時は終了コード 1 で終了します。
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
