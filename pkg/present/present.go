package present

import (
	"errors"
	"fmt"
	"io"

	"github.com/shouni/go-koan-exact/pkg/types"
)

// ErrMissingKoanText は、タイトルはあるが公案本文が見つからなかったことを示します。
// Case がない場合 (タイトルなし) とは区別されます。
var ErrMissingKoanText = errors.New("タイトルは見つかりましたが、公案本文が見つかりませんでした")

// Write は Case のタイトル、空行、本文の順に w へ書き出します。
// c が nil の場合は何も書き出さずに nil を返します。
func Write(w io.Writer, c *types.Case) error {
	if c == nil {
		return nil
	}
	if !c.HasText() {
		return fmt.Errorf("%w (タイトル: %q)", ErrMissingKoanText, c.Title)
	}

	if _, err := fmt.Fprintf(w, "%s\n\n%s\n", c.Title, *c.Text); err != nil {
		return fmt.Errorf("結果の出力に失敗しました: %w", err)
	}
	return nil
}
