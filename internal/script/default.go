package script

// Rule names referenced by Question.OnConfirm. The flow engine maps them to
// queue mutations when the tagged question is answered.
const (
	RuleTramosApoios = "generateTramosAndApoios"
	RuleLongarinas   = "handleLongarinasRules"
)

// Well-known question ids and sections the engine and exporter treat
// specially.
const (
	FieldCodigo             = "CODIGO"
	FieldQtdTramos          = "QTD TRAMOS"
	FieldQtdPilares         = "QTD PILARES"
	FieldQtdLongarinas      = "QTD LONGARINAS"
	FieldEspessuraLongarina = "ESPESSURA LONGARINA"
	FieldReforcoViga        = "REFORCO VIGA"
	FieldTipoSuper          = "TIPO SUPERESTRUTURA"

	SectionPilares = "pilares"
)

// Default returns the built-in OAE inspection script. It is regenerated on
// every call so callers may mutate the result freely.
func Default() *Script {
	nenhumOr := func(fields ...string) *Condition {
		return &Condition{Operator: OpAnyNotEquals, Fields: fields, Value: "Nenhum"}
	}
	return &Script{
		Name: "Cadastro de OAE",
		Sections: []Section{
			{
				ID:    "info",
				Label: "Informações Gerais",
				Questions: []Question{
					{ID: "LOTE", Label: "LOTE", Prompt: "Lote?", Type: TypeText, Required: true},
					{ID: "CODIGO", Label: "CODIGO", Prompt: "Código da obra?", Type: TypeText, Required: true},
					{ID: "NOME", Label: "NOME", Prompt: "Nome da obra?", Type: TypeText},
					{ID: "UF", Label: "UF", Prompt: "Estado (UF)?", Type: TypeText},
					{ID: "RODOVIA", Label: "RODOVIA", Prompt: "Número da rodovia?", Type: TypeInteger},
					{ID: "DATA", Label: "DATA", Prompt: "Data da vistoria?", Type: TypeDate},
					{ID: "ENGENHEIRO", Label: "ENGENHEIRO", Prompt: "Engenheiro responsável?", Type: TypeText},
					{ID: "TECNICO", Label: "TECNICO", Prompt: "Técnico?", Type: TypeText},
				},
			},
			{
				ID:    "configuracao",
				Label: "Configurações",
				Questions: []Question{
					{ID: "COMPRIMENTO", Label: "COMPRIMENTO", Prompt: "Comprimento total (metros)?", Hint: "Responda em metros", Type: TypeNumber, Required: true},
					{ID: "LARGURA", Label: "LARGURA", Prompt: "Largura (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{ID: "ALTURA", Label: "ALTURA", Prompt: "Altura (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{
						ID: FieldQtdTramos, Label: FieldQtdTramos, Prompt: "Quantos tramos?",
						Type: TypeInteger, Required: true,
						ConfirmTemplate: "{value} tramos, correto?",
						OnConfirm:       RuleTramosApoios,
					},
				},
			},
			{
				ID:    "transicao",
				Label: "Transição",
				Questions: []Question{
					{ID: "ALTURA TRANSIÇÃO", Label: "ALTURA TRANSIÇÃO", Prompt: "Altura da transição (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{ID: "CORTINA ALTURA", Label: "CORTINA ALTURA", Prompt: "Altura da cortina (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{
						ID: "TIPO ALA PARALELA", Label: "TIPO ALA PARALELA", Prompt: "Tipo da ala paralela?", Type: TypeSelect,
						Options: []string{"Nenhum", "ALA PARALELA DE CONCRETO ARMADO", "ALA PARALELA DE GABIÃO"},
					},
					{
						ID: "TIPO ALA PERPENDICULAR", Label: "TIPO ALA PERPENDICULAR", Prompt: "Tipo da ala perpendicular?", Type: TypeSelect,
						Options: []string{"Nenhum", "ALA PERPENDICULAR DE CONCRETO ARMADO", "ALA PERPENDICULAR DE GABIÃO"},
					},
					{
						ID: "COMPRIMENTO ALA", Label: "COMPRIMENTO ALA", Prompt: "Comprimento da ala (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: nenhumOr("TIPO ALA PARALELA", "TIPO ALA PERPENDICULAR"),
					},
					{
						ID: "ESPESSURA ALA", Label: "ESPESSURA ALA", Prompt: "Espessura da ala (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: nenhumOr("TIPO ALA PARALELA", "TIPO ALA PERPENDICULAR"),
					},
					{
						ID: "TIPO ENCONTRO", Label: "TIPO ENCONTRO", Prompt: "Tipo de encontro?", Type: TypeSelect,
						Options: []string{"Nenhum", "ENCONTRO LAJE", "ENCONTRO DE CONCRETO ARMADO", "ENCONTRO DE PEDRA ARGAMASSADA"},
					},
					{
						ID: "DESLOCAMENTO ESQUERDO ENCONTRO LAJE", Label: "DESLOCAMENTO ESQUERDO ENCONTRO LAJE",
						Prompt: "Deslocamento esquerdo do encontro laje (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO ENCONTRO", Value: "ENCONTRO LAJE"},
					},
					{
						ID: "DESLOCAMENTO DIREITO ENCONTRO LAJE", Label: "DESLOCAMENTO DIREITO ENCONTRO LAJE",
						Prompt: "Deslocamento direito do encontro laje (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO ENCONTRO", Value: "ENCONTRO LAJE"},
					},
					{
						ID: "COMPRIMENTO ENCONTRO LAJE", Label: "COMPRIMENTO ENCONTRO LAJE",
						Prompt: "Comprimento do encontro laje (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO ENCONTRO", Value: "ENCONTRO LAJE"},
					},
					{
						ID: "LAJE TRANSICAO", Label: "LAJE TRANSICAO", Prompt: "Laje de transição?", Type: TypeSelect,
						Options: []string{"Nenhum", "LAJE DE TRANSIÇÃO DE CONCRETO ARMADO"},
					},
				},
			},
			{
				ID:    "superestrutura",
				Label: "Superestrutura",
				Questions: []Question{
					{
						ID: FieldTipoSuper, Label: FieldTipoSuper, Prompt: "Tipo de superestrutura?", Type: TypeSelect,
						Options: []string{"ENGASTADA", "APOIADA", "MISTA"},
					},
					{
						ID: FieldQtdLongarinas, Label: FieldQtdLongarinas, Prompt: "Quantidade de longarinas?", Type: TypeInteger,
						OnConfirm: RuleLongarinas,
					},
					{ID: "ALTURA LONGARINA", Label: "ALTURA LONGARINA", Prompt: "Altura da longarina (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{
						ID: FieldEspessuraLongarina, Label: FieldEspessuraLongarina, Prompt: "Espessura da longarina (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpNotEquals, Field: FieldQtdLongarinas, Value: "1"},
					},
					{ID: "DESLOCAMENTO ESQUERDO", Label: "DESLOCAMENTO ESQUERDO", Prompt: "Deslocamento esquerdo (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{ID: "DESLOCAMENTO DIREITO", Label: "DESLOCAMENTO DIREITO", Prompt: "Deslocamento direito (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{ID: "QTD TRANSVERSINAS", Label: "QTD TRANSVERSINAS", Prompt: "Quantidade de transversinas?", Type: TypeInteger},
					{
						ID: "TIPO DE TRANSVERSINA", Label: "TIPO DE TRANSVERSINA", Prompt: "Tipo de transversina?", Type: TypeSelect,
						Options:   []string{"TRANSVERSINA DE CONCRETO ARMADO", "TRANSVERSINA METÁLICA"},
						Condition: &Condition{Operator: OpGreaterThan, Field: "QTD TRANSVERSINAS", Value: "0"},
					},
					{
						ID: "ESPESSURA TRANSVERSINA", Label: "ESPESSURA TRANSVERSINA", Prompt: "Espessura da transversina (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpGreaterThan, Field: "QTD TRANSVERSINAS", Value: "0"},
					},
					{ID: "ESPESSURA LAJE", Label: "ESPESSURA LAJE", Prompt: "Espessura da laje (metros)?", Hint: "Responda em metros", Type: TypeNumber},
					{
						ID: FieldReforcoViga, Label: FieldReforcoViga, Prompt: "Possui reforço de viga?", Type: TypeBoolean,
						ConfirmTemplate: "Reforço de viga: {value}, correto?",
					},
				},
			},
			{
				ID:    SectionPilares,
				Label: "Pilares",
				Questions: []Question{
					{
						ID: FieldQtdPilares, Label: FieldQtdPilares, Prompt: "Quantidade de pilares por apoio?", Type: TypeInteger,
						Condition: &Condition{Operator: OpGreaterThan, Field: FieldQtdTramos, Value: "1"},
					},
					{
						ID: "PILAR DESCENTRALIZADO", Label: "PILAR DESCENTRALIZADO", Prompt: "Pilar descentralizado?", Type: TypeSelect,
						Options:   []string{"SIM", "NÃO"},
						Condition: &Condition{Operator: OpGreaterThan, Field: FieldQtdTramos, Value: "1"},
					},
					{
						ID: "TIPO APARELHO APOIO", Label: "TIPO APARELHO APOIO", Prompt: "Tipo de aparelho de apoio?", Type: TypeSelect,
						Options:   []string{"Nenhum", "NEOPRENE", "APARELHO METÁLICO", "APARELHO DE CHUMBO"},
						Condition: &Condition{Operator: OpGreaterThan, Field: FieldQtdTramos, Value: "1"},
					},
					{
						ID: "TIPO TRAVESSA", Label: "TIPO TRAVESSA", Prompt: "Tipo de travessa?", Type: TypeSelect,
						Options: []string{"Nenhum", "TRAVESSA DE APOIO DE CONCRETO ARMADO"},
					},
					{
						ID: "ALTURA TRAVESSA", Label: "ALTURA TRAVESSA", Prompt: "Altura da travessa (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO TRAVESSA", Value: "TRAVESSA DE APOIO DE CONCRETO ARMADO"},
					},
					{
						ID: "TIPO ENCAMISAMENTO", Label: "TIPO ENCAMISAMENTO", Prompt: "Tipo de encamisamento?", Type: TypeSelect,
						Options:   []string{"Nenhum", "ENCAMISAMENTO DE CONCRETO ARMADO"},
						Condition: &Condition{Operator: OpGreaterThan, Field: FieldQtdTramos, Value: "1"},
					},
					{
						ID: "TIPO APOIO TRANSICAO", Label: "TIPO APOIO TRANSICAO", Prompt: "Berço ou pilarete?", Type: TypeSelect,
						Options: []string{"Nenhum", "BERÇO", "PILARETE"},
					},
					{
						ID: "TIPO BLOCO SAPATA", Label: "TIPO BLOCO SAPATA", Prompt: "Tipo de bloco sapata?", Type: TypeSelect,
						Options: []string{"Nenhum", "BLOCO SAPATA DE CONCRETO ARMADO"},
					},
					{
						ID: "ALTURA BLOCO SAPATA", Label: "ALTURA BLOCO SAPATA", Prompt: "Altura do bloco sapata (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO BLOCO SAPATA", Value: "BLOCO SAPATA DE CONCRETO ARMADO"},
					},
					{
						ID: "LARGURA BLOCO SAPATA", Label: "LARGURA BLOCO SAPATA", Prompt: "Largura do bloco sapata (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO BLOCO SAPATA", Value: "BLOCO SAPATA DE CONCRETO ARMADO"},
					},
					{
						ID: "COMPRIMENTO BLOCO SAPATA", Label: "COMPRIMENTO BLOCO SAPATA", Prompt: "Comprimento do bloco sapata (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "TIPO BLOCO SAPATA", Value: "BLOCO SAPATA DE CONCRETO ARMADO"},
					},
					{
						ID: "TIPO CONTRAVENTAMENTO PILAR", Label: "TIPO CONTRAVENTAMENTO PILAR", Prompt: "Tipo de contraventamento de pilar?", Type: TypeSelect,
						Options:   []string{"Nenhum", "CONTRAVENTAMENTO DE CONCRETO ARMADO"},
						Condition: &Condition{Operator: OpGreaterThan, Field: FieldQtdTramos, Value: "1"},
					},
					{
						ID: "QTD VIGA CONTRAVENTAMENTO PILAR", Label: "QTD VIGA CONTRAVENTAMENTO PILAR", Prompt: "Quantidade de vigas de contraventamento?", Type: TypeInteger,
						Condition: nenhumOr("TIPO CONTRAVENTAMENTO PILAR"),
					},
				},
			},
			{
				ID:    "complementares",
				Label: "Complementares",
				Questions: []Question{
					{
						ID: "TIPO BARREIRA ESQUERDA", Label: "TIPO BARREIRA ESQUERDA", Prompt: "Tipo de barreira esquerda?", Type: TypeSelect,
						Options: []string{"Nenhum", "BARREIRA RÍGIDA NEW JERSEY", "BARREIRA METÁLICA"},
					},
					{
						ID: "LARGURA BARREIRA ESQUERDA", Label: "LARGURA BARREIRA ESQUERDA", Prompt: "Largura da barreira esquerda (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: nenhumOr("TIPO BARREIRA ESQUERDA"),
					},
					{
						ID: "TIPO BARREIRA DIREITA", Label: "TIPO BARREIRA DIREITA", Prompt: "Tipo de barreira direita?", Type: TypeSelect,
						Options: []string{"Nenhum", "BARREIRA RÍGIDA NEW JERSEY", "BARREIRA METÁLICA"},
					},
					{
						ID: "LARGURA BARREIRA DIREITA", Label: "LARGURA BARREIRA DIREITA", Prompt: "Largura da barreira direita (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: nenhumOr("TIPO BARREIRA DIREITA"),
					},
					{
						ID: "TIPO CALCADA ESQUERDA", Label: "TIPO CALCADA ESQUERDA", Prompt: "Tipo de calçada esquerda?", Type: TypeSelect,
						Options: []string{"Nenhum", "CALÇADA DE CONCRETO ARMADO"},
					},
					{
						ID: "LARGURA CALCADA ESQUERDA", Label: "LARGURA CALCADA ESQUERDA", Prompt: "Largura da calçada esquerda (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: nenhumOr("TIPO CALCADA ESQUERDA"),
					},
					{
						ID: "TIPO CALCADA DIREITA", Label: "TIPO CALCADA DIREITA", Prompt: "Tipo de calçada direita?", Type: TypeSelect,
						Options: []string{"Nenhum", "CALÇADA DE CONCRETO ARMADO"},
					},
					{
						ID: "LARGURA CALCADA DIREITA", Label: "LARGURA CALCADA DIREITA", Prompt: "Largura da calçada direita (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: nenhumOr("TIPO CALCADA DIREITA"),
					},
					{
						ID: "GUARDA RODAS ESQUERDO", Label: "GUARDA RODAS ESQUERDO", Prompt: "Guarda-rodas esquerdo?", Type: TypeSelect,
						Options:   []string{"Nenhum", "GUARDA-RODAS ANTIGO DO DNER"},
						Condition: &Condition{Operator: OpAnyNotEquals, Fields: []string{"TIPO BARREIRA ESQUERDA"}, Value: "Nenhum", Negate: true},
					},
					{
						ID: "LARGURA GUARDA RODAS ESQUERDO", Label: "LARGURA GUARDA RODAS ESQUERDO", Prompt: "Largura do guarda-rodas esquerdo (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "GUARDA RODAS ESQUERDO", Value: "GUARDA-RODAS ANTIGO DO DNER"},
					},
					{
						ID: "GUARDA RODAS DIREITO", Label: "GUARDA RODAS DIREITO", Prompt: "Guarda-rodas direito?", Type: TypeSelect,
						Options:   []string{"Nenhum", "GUARDA-RODAS ANTIGO DO DNER"},
						Condition: &Condition{Operator: OpAnyNotEquals, Fields: []string{"TIPO BARREIRA DIREITA"}, Value: "Nenhum", Negate: true},
					},
					{
						ID: "LARGURA GUARDA RODAS DIREITO", Label: "LARGURA GUARDA RODAS DIREITO", Prompt: "Largura do guarda-rodas direito (metros)?", Hint: "Responda em metros", Type: TypeNumber,
						Condition: &Condition{Operator: OpEquals, Field: "GUARDA RODAS DIREITO", Value: "GUARDA-RODAS ANTIGO DO DNER"},
					},
					{
						ID: "PAVIMENTO", Label: "PAVIMENTO", Prompt: "Tipo de pavimento?", Type: TypeSelect,
						Options: []string{"ASFALTO", "CONCRETO", "PARALELEPÍPEDO"},
					},
					{ID: "QTD BUZINOTES", Label: "QTD BUZINOTES", Prompt: "Quantidade de buzinotes?", Type: TypeInteger},
				},
			},
		},
	}
}
