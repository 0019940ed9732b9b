package koan

import (
	"context"
)

// ----------------------------------------------------------------------
// 依存性の定義 (DIP)
// ----------------------------------------------------------------------

// Fetcher は、HTMLドキュメントを文字列として取得する機能のインターフェースを定義します。
// *httpclient.Client はこのインターフェースを満たします。
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
