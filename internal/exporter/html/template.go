package html

// ReportTemplate renders one conversion: summary, changed cells and stamped notes
const ReportTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>変換レポート - {{.SourceName}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Hiragino Sans', Meiryo, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 960px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 32px 20px;
            margin-bottom: 24px;
            border-radius: 8px;
        }

        section {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 24px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        h2 {
            color: #667eea;
            margin-bottom: 12px;
            font-size: 1.3em;
        }

        table {
            width: 100%;
            border-collapse: collapse;
        }

        th, td {
            border: 1px solid #d4d4d4;
            padding: 6px 10px;
            text-align: left;
        }

        th {
            background: #e0e0e0;
        }

        td.num {
            text-align: right;
            font-variant-numeric: tabular-nums;
        }

        td.after {
            color: #0000ff;
            font-weight: bold;
        }

        .note {
            color: #d32f2f;
        }

        .empty {
            color: #757575;
            font-style: italic;
        }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>変換レポート</h1>
        <p>{{.SourceName}} → {{.OutputName}}</p>
    </header>

    <section class="summary">
        <h2>概要</h2>
        <table>
            <tr><th>変換日時</th><td>{{.ConvertedDate}}</td></tr>
            <tr><th>処理件数</th><td class="num" id="processed-count">{{.ProcessedCount}}</td></tr>
            <tr><th>丸め方式</th><td>{{.Rounding}}</td></tr>
            <tr><th>出力先</th><td>{{.OutputPath}}</td></tr>
        </table>
    </section>

    <section class="changes">
        <h2>変換したセル</h2>
        {{if .Changes}}
        <table>
            <thead>
                <tr><th>No</th><th>セル</th><th>変換前</th><th>変換後</th><th>差額</th></tr>
            </thead>
            <tbody>
            {{range $i, $c := .Changes}}
                <tr>
                    <td class="num">{{inc $i}}</td>
                    <td>{{$c.Cell}}</td>
                    <td class="num">{{number $c.Before}}</td>
                    <td class="num after">{{number $c.After}}</td>
                    <td class="num">{{diff $c}}</td>
                </tr>
            {{end}}
            </tbody>
        </table>
        {{else}}
        <p class="empty">変換対象の数値はありませんでした。</p>
        {{end}}
    </section>

    <section class="notes">
        <h2>注意事項</h2>
        <table>
            <thead>
                <tr><th>セル</th><th>内容</th></tr>
            </thead>
            <tbody>
            {{range .Notes}}
                <tr><td>{{.Cell}}</td><td class="note">{{.Text}}</td></tr>
            {{end}}
            </tbody>
        </table>
    </section>
</div>
</body>
</html>
`
