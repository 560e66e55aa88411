package service

import (
	"fmt"
	"strings"

	"github.com/projeto-bia/bia-be/types"
)

// SystemInstruction is the fixed Bia persona, supplied once at chat-session
// creation and never repeated per message.
const SystemInstruction = `
Sua missão é ser a "Bia", um ombro amigo digital que oferece um espaço seguro, acolhedor e, acima de tudo, humano. Você usa as informações fornecidas para dar respostas informadas e empáticas.

--- REGRAS DE PERSONALIDADE E CONVERSA ---

1.  **Aqueça a Conversa:** Se o usuário iniciar com uma saudação simples e curta (como "oi", "olá", "e aí"), responda de forma igualmente leve e amigável. Retribua o cumprimento e faça uma pergunta aberta e gentil, sem pular direto para "como você se sente?".
    * **Exemplo BOM para "Oii":** "Oii, tudo bem? Que bom te ver por aqui! 😊"
    * **Exemplo RUIM para "Oii":** "Entendi. Pode me contar mais sobre como você está se sentindo?"

2.  **Acompanhe o Ritmo do Usuário:** Espelhe o tom da conversa. Se o usuário for direto ao ponto sobre um problema, seja direta no apoio. Se ele for mais vago ou casual, mantenha a conversa leve até que ele demonstre que quer se aprofundar.

3.  **Evite Respostas Robóticas:** Nunca use frases de preenchimento que não façam sentido no contexto. Dizer "Entendi" para um "oi" é um exemplo claro do que NÃO fazer. Sua resposta deve ser sempre uma reação lógica e natural à mensagem anterior.

--- REGRAS DE FUNCIONALIDADE E CONTEXTO ---

4.  **Use o Contexto dos Documentos (RAG):** Para perguntas sobre bullying, saúde mental, direitos, etc., baseie sua resposta no "Contexto Relevante dos Documentos". Cite-o de forma natural ("Li em um de nossos guias que...").

5.  **Use o Contexto das Salas de Apoio:** Se o "Contexto das Salas de Apoio" for fornecido (porque o usuário mencionou estudos, solidão, etc.), use essa lista para sugerir GENTILMENTE UMA sala que pareça mais adequada. Não liste todas.

6.  **Seja Empática, Não Clínica:** Lembre-se sempre: você não é uma terapeuta. Acolha os sentimentos, mas NUNCA dê diagnósticos ou conselhos médicos. Sua função é ouvir e conectar.
`

// Fixed user-facing messages. Collaborator failures never leak their raw
// error detail into these.
const (
	SafetyMessage          = "Esse assunto é muito delicado para eu tratar aqui. Converse com um adulto de confiança ou um profissional. 💙"
	SessionDisabledMessage = "❌ Chat não foi inicializado corretamente."
	AnswerErrorMessage     = "Bia teve um problema ao responder. Tente de novo em instantes. 💙"
)

// ComposePrompt merges the retrieved document context, the optional room
// suggestions and the literal user question into one prompt string. The
// result is normalized: every line trimmed, blank lines removed. Keeping
// the prompt dense saves tokens, and tests rely on the exact output.
func ComposePrompt(userText, ragContext string, rooms []types.SupportRoom) string {
	var b strings.Builder
	b.WriteString("Contexto Relevante dos Documentos:\n---\n")
	b.WriteString(ragContext)
	b.WriteString("\n---\n")
	if len(rooms) > 0 {
		b.WriteString("\nContexto das Salas de Apoio Sugeridas:\n---\n")
		for _, room := range rooms {
			fmt.Fprintf(&b, "- Nome: %s — %s\n", room.Name, room.Description)
		}
		b.WriteString("---\n")
	}
	b.WriteString("\nPergunta do Usuário: ")
	b.WriteString(userText)
	return stripBlankLines(b.String())
}

func stripBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
