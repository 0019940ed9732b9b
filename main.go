package main

import "github.com/shouni/go-koan-exact/cmd"

// main は cmd.Execute を呼び出します。エラー時の終了コード (1) は clibase が処理します。
func main() {
	cmd.Execute()
}
