package llm

import "github.com/kaikyMoura/sentinel-cli/internal/domain"

// System prompt templates keyed by task
var systemPrompts = map[domain.Task]string{
	domain.TaskDocumentation: `Act as a senior software engineer and generate a professional, clear, and concise technical documentation in Markdown.
Include: 1. Project Overview 2. File Structure 3. Key Components & Responsibilities 4. Setup & Usage Instructions.`,

	domain.TaskImprovements: `Act as a senior software engineer and review the code.
Provide detailed improvement suggestions in Markdown, categorized by:
1. Code Quality 2. Bug Risks 3. Performance Enhancements 4. Security Best Practices.`,

	domain.TaskCommitMessage: `Act as an experienced software engineer. Based on the following 'git diff', generate a clear and concise commit message following the Conventional Commits specification.
The message should have a header, an optional body, and an optional footer.
Example: feat(api): add new endpoint for users`,

	domain.TaskApplyImprovements: `Act as a senior software engineer. Based on the provided code, rewrite it by applying best practices for quality, performance, and security.
Your response should ONLY be the modified code, with no explanations, so it can be applied directly as a patch.
If there are multiple files, format the output as a .diff file.`,
}

// SystemPrompt returns the system prompt template for a task
func SystemPrompt(task domain.Task) (string, bool) {
	prompt, ok := systemPrompts[task]
	return prompt, ok
}
