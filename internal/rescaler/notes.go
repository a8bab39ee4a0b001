package rescaler

import "xlsx-rescaler/internal/model"

// Notes is the fixed annotation table stamped onto Sheet1 after the numeric pass.
// Entries are applied in order; every entry addresses a distinct cell.
//
// The wording and cells below are placeholders. Replace them with the
// purchasing team's approved note table; notes_test.go only checks the shape
// (distinct cells, none in the scanned column), not the text.
var Notes = []model.NoteEntry{
	{Column: "J", Row: 2, Text: "【注意事項】"},
	{Column: "J", Row: 3, Text: "※仕入れ単価は元の単価に0.9を掛け、1円未満を四捨五入した金額です。"},
	{Column: "J", Row: 4, Text: "※表示価格はすべて税抜です。"},
	{Column: "J", Row: 5, Text: "※仕入れ条件は予告なく変更となる場合があります。"},
	{Column: "J", Row: 6, Text: "※在庫状況により納期が前後する場合がございます。"},
}

// NoteEntries returns a copy of the note table
func NoteEntries() []model.NoteEntry {
	out := make([]model.NoteEntry, len(Notes))
	copy(out, Notes)
	return out
}
