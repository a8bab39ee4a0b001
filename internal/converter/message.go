package converter

import (
	"errors"
	"fmt"

	"xlsx-rescaler/internal/model"
	"xlsx-rescaler/internal/rescaler"
)

// User-facing messages shown after a conversion
const (
	msgSuccess       = "仕入れ単価の数値を変換して注意事項を入力しました（%d 件処理）"
	msgMissingSheet  = "Sheet1 が存在しません。"
	msgUnsupported   = "Excelファイル（.xlsx）を指定してください。"
	msgGenericFailed = "処理中にエラーが発生しました。"
)

// Message renders the outcome of Convert for the user
func Message(report *model.Report, err error) string {
	switch {
	case err == nil && report != nil:
		return fmt.Sprintf(msgSuccess, report.ProcessedCount)
	case errors.Is(err, rescaler.ErrMissingSheet):
		return msgMissingSheet
	case errors.Is(err, ErrUnsupportedFile):
		return msgUnsupported
	default:
		return msgGenericFailed
	}
}
