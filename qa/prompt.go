package qa

import (
	"fmt"

	"github.com/askdoc/askdoc/llm"
)

// RefusalSentence is the fixed sentence the model is instructed to emit
// when a question cannot be answered from the supplied document. The model
// chooses whether to emit it; nothing here enforces it locally.
const RefusalSentence = "This question is outside the scope of the provided document."

// chatSystemPrompt is the persona for document-free chat mode.
const chatSystemPrompt = "You are a helpful AI assistant. You can answer any question or engage in small talk."

// documentSystemPrompt grounds the model strictly in the supplied context.
const documentSystemPrompt = "You are an AI assistant tasked with answering questions " +
	"strictly based on the following context. If the question " +
	"is outside the scope of the provided context, respond with " +
	"'" + RefusalSentence + "'"

// ChatPayload builds the prompt for chat mode: persona plus the raw
// question.
func ChatPayload(question string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: chatSystemPrompt},
		{Role: llm.RoleUser, Content: question},
	}
}

// DocumentPayload builds the prompt for document mode: grounding
// instruction plus the context/question pair.
func DocumentPayload(question, context string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: documentSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Context: %s\n\nQuestion: %s", context, question)},
	}
}
