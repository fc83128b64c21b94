// Package report は解析済みテーブルをテキストに整形します
package report

import (
	"fmt"
	"strings"

	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// FormatLine は1件分の行を返します。改行は \n の2文字に置き換えます。
func FormatLine(id uint32, text string) string {
	return fmt.Sprintf("%#x: \"%s\"\n", id, strings.ReplaceAll(text, "\n", `\n`))
}

// Format はテーブルの全テキストを IDs の順に整形します
func Format(table *msd.TextTable) string {
	if table == nil {
		return ""
	}
	var builder strings.Builder
	for _, id := range table.IDs {
		text, ok := table.Get(id)
		if !ok {
			continue
		}
		builder.WriteString(FormatLine(id, text))
	}
	return builder.String()
}
