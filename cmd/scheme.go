package cmd

import (
	"fmt"
	"net/url"
)

// ensureScheme は、URLのスキームが存在しない場合に http:// を補完します。
// 公案サイトは http で提供されているため、https ではなく http をデフォルトとします。
func ensureScheme(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("URLが指定されていません")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("URLのパースエラー: %w", err)
	}

	if parsedURL.Scheme != "" {
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return "", fmt.Errorf("無効なURLスキームです。httpまたはhttpsを指定してください: %s", rawURL)
		}
		return rawURL, nil
	}

	return "http://" + rawURL, nil
}
