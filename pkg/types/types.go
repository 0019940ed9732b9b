package types

// Case は、1つのページから抽出された公案（ケース）を保持します。
// Title が取得できない場合、Case は生成されません。
type Case struct {
	Title string  // 最後の <title> 要素の最初の子ノードのテキスト (前後の空白を除去)
	Text  *string // .koan 要素のテキストを連結したもの。存在しない場合は nil
}

// HasText は、公案本文が存在するかどうかを返します。
func (c *Case) HasText() bool {
	return c != nil && c.Text != nil
}
