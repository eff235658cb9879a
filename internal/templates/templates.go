package templates

import (
	"html/template"
	"strings"
)

// boardHTML renders the position as a plain table so that chat clients with
// minimal HTML support can still display it.
const boardHTML = `<table style="border-collapse:collapse;font-size:24px">
{{- range $i, $rank := .Ranks}}
<tr>
{{- range $j, $cell := $rank}}
<td style="width:32px;height:32px;text-align:center;background:{{squareColor $i $j}}">{{$cell}}</td>
{{- end}}
</tr>
{{- end}}
</table>`

var board = template.Must(template.New("board").Funcs(template.FuncMap{
	"squareColor": func(rank, file int) string {
		if (rank+file)%2 == 0 {
			return "#f0d9b5"
		}
		return "#b58863"
	},
}).Parse(boardHTML))

// RenderBoard renders an 8x8 grid of piece letters as an HTML board, mapping
// each letter through glyphs.
func RenderBoard(grid [8][8]string, glyphs map[string]string) (string, error) {
	var data struct {
		Ranks [8][8]string
	}
	for i, rank := range grid {
		for j, cell := range rank {
			if glyph, ok := glyphs[cell]; ok {
				data.Ranks[i][j] = glyph
			} else {
				data.Ranks[i][j] = cell
			}
		}
	}
	var sb strings.Builder
	if err := board.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
