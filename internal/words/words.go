// Package words はお題（単語ペア）の静的データを提供します
package words

import "github.com/nyk9/shuwa-word-wolf-api/internal/models"

// List は出題可能なお題の一覧です
// データは手話学習用の単語ペアで、プロセス起動時に固定されます
var List = []models.Word{
	{ID: 1, Type: "動物", Majority: "犬", Minority: "猫"},
	{ID: 2, Type: "食べ物", Majority: "トマト", Minority: "りんご"},
	{ID: 3, Type: "単語", Majority: "説明", Minority: "報告"},
}

// Find はIDに一致するお題を返します
// 見つからない場合はfalseを返します
func Find(id int) (models.Word, bool) {
	for _, w := range List {
		if w.ID == id {
			return w, true
		}
	}
	return models.Word{}, false
}
