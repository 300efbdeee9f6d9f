package insight

import (
	"fmt"
	"strings"
)

// promptTemplate is the analyst prompt. Kept in Portuguese: the KPI keys
// and the audience are Brazilian, and mixing languages degrades the
// quality of the generated analysis.
const promptTemplate = `Você é um analista sênior especialista em funis de vendas e performance comercial.
Analise os dados abaixo e gere insights estratégicos de alto nível.

DADOS DO FUNIL (KPIs Calculados):
%s

AMOSTRA DE DADOS (Primeiras %d linhas):
%s

OBJETIVO DA ANÁLISE:
Identificar gargalos, padrões de sucesso e oportunidades de melhoria no processo comercial.

ESTRUTURA DA RESPOSTA:
1. **Diagnóstico Geral**: Visão resumida da saúde do funil.
2. **Análise de Gargalos**: Onde estamos perdendo mais leads? (Analise conversão entre etapas e status de abandono).
3. **Performance por Responsável**: Quem está convertendo melhor e por quê? Quem precisa de ajuda?
4. **Eficiência de Canais (Origem)**: Qual origem traz leads mais qualificados (melhor conversão)?
5. **Recomendações de Ação**: 3 a 5 ações práticas para melhorar os resultados baseadas nos dados.

REGRAS:
- Seja direto e executivo.
- Use bullet points.
- Cite números para embasar seus argumentos.
- Se houver dados insuficientes para alguma conclusão, informe.`

// SampleRows is the number of cleaned records included in the prompt, a
// bounded slice so prompt size stays independent of dataset size.
const SampleRows = 50

func buildPrompt(metricsJSON, sampleCSV string) string {
	return fmt.Sprintf(promptTemplate, metricsJSON, SampleRows, strings.TrimSpace(sampleCSV))
}
