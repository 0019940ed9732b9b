package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-koan-exact/pkg/koan"
	"github.com/shouni/go-koan-exact/pkg/types"
)

// FetchCase は、URLからページを取得して Case を抽出するメインの処理パイプラインです。
// overallTimeout が 0 以下の場合、全体のタイムアウトは設定しません。
// タイトルが見つからない場合は (nil, nil) を返します。
func FetchCase(ctx context.Context, fetcher koan.Fetcher, rawURL string, overallTimeout time.Duration) (*types.Case, error) {
	// 1. Extractor を初期化 (DI)
	extractor, err := koan.NewExtractor(fetcher)
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}

	// 2. 全体処理のコンテキストを設定
	if overallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, overallTimeout)
		defer cancel()
	}

	// 3. 抽出の実行
	c, err := extractor.FetchAndExtractCase(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("公案の抽出エラー (URL: %s): %w", rawURL, err)
	}

	return c, nil
}
