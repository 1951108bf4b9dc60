// Command scripic は画像生成・テキスト編集・Web リサーチの各ワークフローを
// コマンドラインと HTTP API から実行します。
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
