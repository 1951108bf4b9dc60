package prompt

import "strings"

const (
	// styleClauseFormat は画風指定時にプロンプトへ付与する句です。
	styleClauseFormat = " en estilo artístico %s."

	// QualitySuffix はすべての画像プロンプトの末尾に付与する品質向上の指示です。
	QualitySuffix = " Alta calidad, detalle cinematográfico, 4k, iluminación profesional."

	// EditTemperature はテキスト編集時の temperature です。
	EditTemperature float32 = 0.7

	// EditSystemInstruction は編集後のテキストのみを返すようモデルに指示します。
	EditSystemInstruction = "Eres un editor experto. Transforma el texto según las instrucciones. " +
		"Devuelve ÚNICAMENTE el texto editado, sin explicaciones, comentarios ni saludos."

	// ResearchSystemInstruction は normalizer.ParseBlocks が解釈する出力文法を指定します。
	ResearchSystemInstruction = `Eres un investigador profesional. Responde ÚNICAMENTE con hallazgos estructurados.
Cada hallazgo debe seguir exactamente este formato:
<Título del hallazgo>
- <Punto clave>
- <Punto clave>
<Fuente>
La primera línea es el título, cada punto clave va en su propia línea empezando con "- " y la última línea indica la fuente.
Separa cada hallazgo del siguiente con una línea que contenga únicamente "---".
No escribas introducciones, saludos, resúmenes finales ni texto fuera de los bloques.
No incluyas contenido violento, sexual, discriminatorio, ilegal o peligroso.`

	editMessageFormat = "INSTRUCCIÓN: %s\n\nTEXTO: \"%s\""
	instructionSep    = ", "
)

// PresetInstructions は編集フォームで選択できる定型の指示です。
var PresetInstructions = []string{
	"Corregir gramática y ortografía",
	"Resumir de forma concisa",
	"Cambiar a un tono más profesional",
	"Traducir al Inglés",
	"Reescribir de forma creativa",
}

// JoinInstructions は選択された定型指示と任意の自由入力指示を ", " で連結します。
// 空の指示は除外します。
func JoinInstructions(selected []string, custom string) string {
	parts := make([]string, 0, len(selected)+1)
	for _, s := range selected {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if c := strings.TrimSpace(custom); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, instructionSep)
}
