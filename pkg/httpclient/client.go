package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultURL は、ランダムな公案ページを返すエンドポイントです。
	DefaultURL = "http://thecodelesscode.com/case/random"

	MaxBodySize = int64(10 * 1024 * 1024) // 10MB: レスポンスボディの最大読み込みサイズ
)

var (
	// ErrRequestFailed は、ネットワーク/接続エラー (DNS, 接続拒否, TLS, タイムアウト) を示します。
	ErrRequestFailed = errors.New("HTTPリクエストに失敗しました")
	// ErrDecodeBody は、レスポンスボディの読み込みまたはデコードの失敗を示します。
	ErrDecodeBody = errors.New("レスポンスボディを解析できませんでした")
)

// StatusError は、200 以外のステータスコードを示すエラー型です。
// URL はリダイレクト解決後の最終的なURLです。
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response code %d for %s", e.StatusCode, e.URL)
}

// IsStatusError は与えられたエラーが StatusError であるかを判断します。
func IsStatusError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// Doer は、標準の *http.Client.Do()と互換性のあるHTTPクライアントのインターフェースを定義します。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client は、1回だけのGETリクエストでページを取得します。リトライは行いません。
type Client struct {
	httpClient Doer
}

// ClientOption はClientの設定を行うための関数型です。
type ClientOption func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// New は新しいClientを初期化します。
// timeout が 0 以下の場合、クライアント側のタイムアウトは設定しません。
func New(timeout time.Duration, options ...ClientOption) *Client {
	if timeout < 0 {
		timeout = 0
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// FetchText は URL に対して GET を1回だけ実行し、レスポンスボディを UTF-8 文字列として返します。
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			URL:        finalURL(resp, url),
		}
	}

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	return decodeBody(body, resp.Header.Get("Content-Type"))
}

// readBody はボディを最後まで読み込みます。MaxBodySize を超える場合は途中で切らずにエラーとします。
func readBody(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("%w: レスポンスボディが最大サイズ (%dバイト) を超えています (Content-Length: %d)", ErrDecodeBody, MaxBodySize, resp.ContentLength)
	}

	// MaxBodySize + 1 バイトまで読み込み、超過を検出する
	body, err := httpkit.HandleLimitedResponse(resp, MaxBodySize+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeBody, err)
	}
	if int64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("%w: レスポンスボディのサイズが制限値 (%dバイト) を超過しました", ErrDecodeBody, MaxBodySize)
	}
	return body, nil
}

// decodeBody は Content-Type と <meta charset> を手掛かりにボディを UTF-8 に変換します。
func decodeBody(body []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecodeBody, err)
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecodeBody, err)
	}
	return string(decoded), nil
}

// finalURL はリダイレクト後のURLを返します。取得できない場合はリクエストURLを返します。
func finalURL(resp *http.Response, fallback string) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return fallback
}
