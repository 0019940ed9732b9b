package koan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shouni/go-koan-exact/pkg/types"
)

// ----------------------------------------------------------------------
// 定数定義 (解析関連のみ)
// ----------------------------------------------------------------------
const (
	TitleSelector = "title"
	KoanSelector  = ".koan"
)

// Extractor は、Fetcher を使って公案の取得と抽出を管理します。
type Extractor struct {
	fetcher Fetcher
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("koan.NewExtractor: Fetcher cannot be nil")
	}
	return &Extractor{
		fetcher: fetcher,
	}, nil
}

// FetchAndExtractCase は指定されたURLからページを取得し、Case を抽出します。
// タイトルが見つからない場合は (nil, nil) を返します。
func (e *Extractor) FetchAndExtractCase(ctx context.Context, url string) (*types.Case, error) {
	// 1. Fetcherから本文を取得 (通信の責務)
	body, err := e.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}

	// 2. goquery.Documentに変換 (解析の責務)
	doc, err := ParseString(body)
	if err != nil {
		return nil, err
	}

	return ExtractCase(doc), nil
}

// Parse は、壊れたHTMLも許容してドキュメントを構築します。
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("HTML解析に失敗しました: %w", err)
	}
	return doc, nil
}

// ParseString は文字列から Parse します。
func ParseString(html string) (*goquery.Document, error) {
	return Parse(strings.NewReader(html))
}

// ExtractCase はタイトルと公案本文から Case を組み立てます。
// タイトルがなければ nil を返し、本文の抽出は行いません。
func ExtractCase(doc *goquery.Document) *types.Case {
	title, ok := ExtractTitle(doc)
	if !ok {
		return nil
	}

	c := &types.Case{Title: title}
	if text, ok := ExtractKoanText(doc); ok {
		c.Text = &text
	}
	return c
}

// ExtractTitle は最後の <title> 要素の、最初の子ノードのテキストを返します。
// 内部の改行や空白はそのまま保持し、前後の空白のみ除去します。
func ExtractTitle(doc *goquery.Document) (string, bool) {
	title := doc.Find(TitleSelector).Last()
	if title.Length() == 0 {
		return "", false
	}

	firstChild := title.Contents().First()
	if firstChild.Length() == 0 {
		return "", false
	}

	return trimmedText(firstChild), true
}

// ExtractKoanText は class に koan を含むすべての要素のテキストを、
// 要素ごとに trim したうえで区切り文字なしで文書順に連結します。
func ExtractKoanText(doc *goquery.Document) (string, bool) {
	var sb strings.Builder

	doc.Find(KoanSelector).Each(func(i int, s *goquery.Selection) {
		sb.WriteString(trimmedText(s))
	})

	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}

// trimmedText は子孫のテキストを連結し、前後の空白を除去します。
func trimmedText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
